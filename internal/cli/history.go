package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/xavierca1/call-screener/internal/entity"
	"github.com/xavierca1/call-screener/internal/infra/integration/callerapi"
	"github.com/xavierca1/call-screener/internal/screening"
)

type rosterLister interface {
	List(ctx context.Context) ([]*entity.Caller, error)
}

// newLister is swapped in tests.
var newLister = func(url, token string, timeout time.Duration) rosterLister {
	return callerapi.NewClient(url, token, timeout)
}

func newHistoryCmd() *cobra.Command {
	v := viper.New()
	v.AutomaticEnv()

	var phone, exclude string

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List a phone number's most recent calls from the caller API",
		RunE: func(cmd *cobra.Command, args []string) error {
			if phone == "" {
				return errors.New("--phone is required")
			}
			url := v.GetString("CALLER_API_URL")
			if url == "" {
				return errors.New("caller API URL not set (--api-url or CALLER_API_URL)")
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), v.GetDuration("CALLER_API_TIMEOUT"))
			defer cancel()

			roster, err := newLister(url, v.GetString("CALLER_API_TOKEN"), v.GetDuration("CALLER_API_TIMEOUT")).List(ctx)
			if err != nil {
				return fmt.Errorf("load roster: %w", err)
			}
			return printJSON(cmd.OutOrStdout(), screening.History(phone, roster, exclude))
		},
	}

	cmd.Flags().StringVar(&phone, "phone", "", "caller phone number")
	cmd.Flags().StringVar(&exclude, "exclude", "", "caller id to leave out")
	cmd.Flags().String("api-url", "", "caller API base URL")
	cmd.Flags().String("token", "", "caller API bearer token")
	cmd.Flags().Duration("timeout", 10*time.Second, "request timeout")

	_ = v.BindPFlag("CALLER_API_URL", cmd.Flags().Lookup("api-url"))
	_ = v.BindPFlag("CALLER_API_TOKEN", cmd.Flags().Lookup("token"))
	_ = v.BindPFlag("CALLER_API_TIMEOUT", cmd.Flags().Lookup("timeout"))
	return cmd
}
