package cmd

import (
	"bufio"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/nwidger/go-mail/message"
)

var (
	fromAddr string
	toAddrs  []string
	ccAddrs  []string
	subject  string
	textBody string
	htmlBody string

	buildCmd = &cobra.Command{
		Use:   "build",
		Short: "Build a message from flags and write it to stdout",
		RunE:  runBuild,
	}
)

func init() {
	buildCmd.Flags().StringVar(&fromAddr, "from", "", "From address (required)")
	buildCmd.Flags().StringSliceVar(&toAddrs, "to", nil, "To address, repeatable")
	buildCmd.Flags().StringSliceVar(&ccAddrs, "cc", nil, "Cc address, repeatable")
	buildCmd.Flags().StringVar(&subject, "subject", "", "Subject line")
	buildCmd.Flags().StringVar(&textBody, "text", "", "plain text body")
	buildCmd.Flags().StringVar(&htmlBody, "html", "", "HTML body; combined with --text as multipart/alternative")
	_ = buildCmd.MarkFlagRequired("from")
}

func runBuild(cmd *cobra.Command, args []string) error {
	b := message.NewMessageBuilder().
		From(fromAddr).
		To(toAddrs...).
		Cc(ccAddrs...).
		Subject(subject)

	msg, err := finishBody(b)
	if err != nil {
		return err
	}

	slog.Debug("built message", "to", toAddrs, "cc", ccAddrs, "subject", subject)

	w := bufio.NewWriter(os.Stdout)
	defer w.Flush()

	s := msg.Stream()
	for {
		chunk, err := s.Next()
		if len(chunk) > 0 {
			if _, werr := w.Write(chunk); werr != nil {
				return werr
			}
		}
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
	}
}

func finishBody(b *message.MessageBuilder) (*message.Message, error) {
	if htmlBody == "" {
		return b.Body(message.TextPayload(textBody))
	}

	text := message.NewSinglePartBuilder().
		QuotedPrintable().
		ContentType("text/plain").
		Body(message.TextPayload(textBody))
	html := message.NewSinglePartBuilder().
		QuotedPrintable().
		ContentType("text/html").
		Body(message.TextPayload(htmlBody))

	return b.MIMEBody(message.Alternative(text, html))
}
