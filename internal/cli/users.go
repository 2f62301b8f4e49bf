package cli

import (
	"calibration_quiz/internal/repository"
	"calibration_quiz/internal/util"
	"calibration_quiz/pkg/database"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// NewUsersCmd lists registered users with their number of stored scores.
func NewUsersCmd(configDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "users",
		Short: "List registered users",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configDir)
			if err != nil {
				return err
			}
			db, err := database.InitDB(&cfg.Database, "release", false)
			if err != nil {
				return err
			}
			if sqlDB, err := db.DB(); err == nil {
				defer sqlDB.Close()
			}

			ctx := cmd.Context()
			users := repository.NewUserRepository(db)
			scores := repository.NewScoreRepository(db)

			list, err := users.List(ctx)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tUSERNAME\tEMAIL\tREGISTERED\tSCORES")
			for _, u := range list {
				n, err := scores.CountByUser(ctx, u.ID)
				if err != nil {
					return err
				}
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%d\n", u.ID, u.Username, u.Email, u.RegistrationDate.Format(util.DateFormat), n)
			}
			return w.Flush()
		},
	}
}
