package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/polarisaistudio/ml-training-site-sub001/internal/service"
)

var hashPasswordCmd = &cobra.Command{
	Use:   "hash-password [password]",
	Short: "Print a bcrypt hash suitable for ADMIN_PASSWORD_HASH",
	Long:  "Hash the given password, or ADMIN_PASSWORD when no argument is passed, and print the bcrypt hash.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runHashPassword,
}

var hashCost int

func init() {
	hashPasswordCmd.Flags().IntVar(&hashCost, "cost", 12, "bcrypt cost (4-14)")
	rootCmd.AddCommand(hashPasswordCmd)
}

func runHashPassword(_ *cobra.Command, args []string) error {
	password := os.Getenv("ADMIN_PASSWORD")
	if len(args) == 1 {
		password = args[0]
	}
	password = strings.TrimSpace(password)
	if password == "" {
		return errors.New("password is required (pass it as an argument or set ADMIN_PASSWORD)")
	}
	if hashCost < 4 || hashCost > 14 {
		return fmt.Errorf("cost must be between 4 and 14, got %d", hashCost)
	}

	hash, err := service.HashPassword(password, hashCost)
	if err != nil {
		return err
	}
	fmt.Println(hash)
	return nil
}
