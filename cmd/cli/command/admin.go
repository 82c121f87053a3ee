package command

import (
	"fmt"

	"github.com/spf13/cobra"
)

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Back-office commands (admin role)",
}

var messagesCmd = &cobra.Command{
	Use:   "messages",
	Short: "Show and clear pending admin notices",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := GetAuthenticatedClient()
		if err != nil {
			return err
		}
		msgs, err := c.AdminMessages()
		if err != nil {
			return fmt.Errorf("failed to get messages: %w", err)
		}
		if len(msgs) == 0 {
			fmt.Println("No pending messages.")
			return nil
		}
		for _, m := range msgs {
			success("%s", m)
		}
		return nil
	},
}

func init() {
	adminCmd.AddCommand(messagesCmd)
}
