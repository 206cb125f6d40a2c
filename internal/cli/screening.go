package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/xavierca1/call-screener/internal/entity"
	"github.com/xavierca1/call-screener/internal/screening"
)

func newClassifyCmd() *cobra.Command {
	var topic, notes, scale string

	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Print the priority a topic and notes would get",
		RunE: func(cmd *cobra.Command, args []string) error {
			p := screening.ClassifyScale(entity.ParseScale(scale), topic, notes)
			fmt.Fprintln(cmd.OutOrStdout(), p)
			return nil
		},
	}
	cmd.Flags().StringVar(&topic, "topic", "", "call topic")
	cmd.Flags().StringVar(&notes, "notes", "", "screener notes")
	cmd.Flags().StringVar(&scale, "scale", "standard", "priority scale (standard|extended)")
	return cmd
}

func newEncodeCmd() *cobra.Command {
	var (
		topic, notes, scale string
		docs                []string
	)

	cmd := &cobra.Command{
		Use:   "encode",
		Short: "Print the notes field a screening would be stored as",
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(topic) == "" {
				return errors.New("--topic is required")
			}
			documents := make([]entity.Document, 0, len(docs))
			for _, name := range docs {
				documents = append(documents, entity.Document{Name: name})
			}
			entry := screening.NewEntry(entity.ParseScale(scale), topic, notes, documents)
			fmt.Fprintln(cmd.OutOrStdout(), screening.Encode(entry))
			return nil
		},
	}
	cmd.Flags().StringVar(&topic, "topic", "", "call topic")
	cmd.Flags().StringVar(&notes, "notes", "", "screener notes")
	cmd.Flags().StringVar(&scale, "scale", "standard", "priority scale (standard|extended)")
	cmd.Flags().StringSliceVar(&docs, "doc", nil, "attached document name (repeatable)")
	return cmd
}

func newDecodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "decode [notes]",
		Short: "Decode a stored notes field; reads stdin when no argument is given",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var text string
			if len(args) == 1 {
				text = args[0]
			} else {
				b, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("read stdin: %w", err)
				}
				text = strings.TrimSpace(string(b))
			}
			return printJSON(cmd.OutOrStdout(), screening.Decode(text))
		},
	}
}
