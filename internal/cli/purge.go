package cli

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/sardorbek/kalit/config"
	"github.com/sardorbek/kalit/database"
	"github.com/sardorbek/kalit/internal/repository"
	"github.com/sardorbek/kalit/internal/service"
)

func newPurgeCmd() *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "purge",
		Short: "Delete tests older than the retention window",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.NewConfig()
			if err != nil {
				return err
			}
			db, err := database.NewDatabase(cfg)
			if err != nil {
				return err
			}
			if days <= 0 {
				days = cfg.RetentionDays
			}
			registry := service.NewRegistryService(
				repository.NewTestRepository(db),
				repository.NewUserRepository(db),
			)
			deleted, err := registry.Purge(days)
			if err != nil {
				return err
			}
			log.Info().Int64("deleted", deleted).Int("days", days).Msg("Purge finished")
			return nil
		},
	}
	cmd.Flags().IntVar(&days, "days", 0, "retention window in days (default: RETENTION_DAYS from config)")
	return cmd
}
