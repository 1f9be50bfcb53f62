package cli

import (
	"fmt"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/ljmonteiro/backoffice/internal/core/domain"
	"github.com/ljmonteiro/backoffice/internal/dto"
)

func init() {
	rootCmd.AddCommand(userCmd)
	userCmd.AddCommand(userRegisterCmd, userLoginCmd, userPasswdCmd, userActivateCmd, userDeactivateCmd, userListCmd)
	userRegisterCmd.Flags().String("email", "", "email address")
	userRegisterCmd.Flags().String("role", "customer", "role: customer, seller, manager or admin")
	userListCmd.Flags().String("role", "", "filter by role")
}

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage user accounts",
}

// promptPassword reads a password from the terminal without echo.
func promptPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	raw, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return string(raw), nil
}

var userRegisterCmd = &cobra.Command{
	Use:   "register USERNAME",
	Short: "Register a new user account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		password, err := promptPassword("Password: ")
		if err != nil {
			return err
		}
		email, _ := cmd.Flags().GetString("email")
		role, _ := cmd.Flags().GetString("role")
		user, err := a.users.Register(cmd.Context(), dto.RegisterUserRequest{
			Username: args[0],
			Password: password,
			Email:    email,
			Role:     domain.UserRole(role),
			Actor:    actor(),
		})
		if err != nil {
			return err
		}
		fmt.Printf("user %s registered with role %s\n", user.Username, user.Role)
		return nil
	},
}

var userLoginCmd = &cobra.Command{
	Use:   "login USERNAME",
	Short: "Verify credentials and record the login",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		password, err := promptPassword("Password: ")
		if err != nil {
			return err
		}
		user, err := a.users.Authenticate(cmd.Context(), args[0], password)
		if err != nil {
			return err
		}
		fmt.Printf("welcome %s (%s)\n", user.Username, user.Role)
		return nil
	},
}

var userPasswdCmd = &cobra.Command{
	Use:   "passwd USERNAME",
	Short: "Change a user's password",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		current, err := promptPassword("Current password: ")
		if err != nil {
			return err
		}
		next, err := promptPassword("New password: ")
		if err != nil {
			return err
		}
		if err := a.users.ChangePassword(cmd.Context(), dto.ChangePasswordRequest{
			Username:        args[0],
			CurrentPassword: current,
			NewPassword:     next,
		}); err != nil {
			return err
		}
		fmt.Println("password changed")
		return nil
	},
}

var userActivateCmd = &cobra.Command{
	Use:   "activate USERNAME",
	Short: "Reactivate a deactivated account",
	Args:  cobra.ExactArgs(1),
	RunE:  runSetActive(true),
}

var userDeactivateCmd = &cobra.Command{
	Use:   "deactivate USERNAME",
	Short: "Deactivate an account",
	Args:  cobra.ExactArgs(1),
	RunE:  runSetActive(false),
}

func runSetActive(active bool) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		if err := a.users.SetActive(cmd.Context(), args[0], active, actor()); err != nil {
			return err
		}
		state := "deactivated"
		if active {
			state = "activated"
		}
		fmt.Printf("account %s %s\n", args[0], state)
		return nil
	}
}

var userListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all user accounts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		var role *domain.UserRole
		if v, _ := cmd.Flags().GetString("role"); v != "" {
			r := domain.UserRole(v)
			role = &r
		}
		users, err := a.users.ListUsers(cmd.Context(), role)
		if err != nil {
			return err
		}
		if len(users) == 0 {
			fmt.Println("no users registered")
			return nil
		}
		for _, u := range users {
			state := "active"
			if !u.Active {
				state = "inactive"
			}
			lastLogin := "never"
			if u.LastLoginAt != nil {
				lastLogin = *u.LastLoginAt
			}
			fmt.Printf("%-15s %-8s %-8s last login %s\n", u.Username, u.Role, state, lastLogin)
		}
		return nil
	},
}
