package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/devGospel/jetstores/internal/api"
)

// Small operational tool for poking the escrow API without a browser.
func main() {
	loginCmd := flag.NewFlagSet("login", flag.ExitOnError)
	email := loginCmd.String("email", "", "Account email")
	password := loginCmd.String("password", "", "Account password")

	sellersCmd := flag.NewFlagSet("sellers", flag.ExitOnError)
	token := sellersCmd.String("token", "", "Access token from a previous login")

	if len(os.Args) < 2 {
		fmt.Println("expected 'login' or 'sellers' subcommand")
		os.Exit(1)
	}

	switch os.Args[1] {
	case "login":
		loginCmd.Parse(os.Args[2:])
		if *email == "" || *password == "" {
			fmt.Println("email and password are required")
			loginCmd.PrintDefaults()
			os.Exit(1)
		}
		login(*email, *password)
	case "sellers":
		sellersCmd.Parse(os.Args[2:])
		if *token == "" {
			fmt.Println("token is required")
			sellersCmd.PrintDefaults()
			os.Exit(1)
		}
		listSellers(*token)
	default:
		fmt.Println("expected 'login' or 'sellers' subcommand")
		os.Exit(1)
	}
}

func newClient() *api.Client {
	baseURL := os.Getenv("API_BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:5000"
	}
	return api.NewClient(baseURL)
}

func login(email, password string) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	resp, err := newClient().Login(ctx, email, password)
	if err != nil {
		log.Fatalf("Login failed: %v", err)
	}

	fmt.Printf("Logged in as %s (%s)\n", resp.User.Email, resp.User.Role)
	fmt.Printf("access token:  %s\n", resp.AccessToken)
	fmt.Printf("refresh token: %s\n", resp.RefreshToken)
}

func listSellers(token string) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	sellers, err := newClient().GetSellers(ctx, token)
	if err != nil {
		log.Fatalf("Failed to fetch sellers: %v", err)
	}

	for _, s := range sellers {
		status := "inactive"
		if s.IsActive {
			status = "active"
		}
		fmt.Printf("%s  %s  (%s)\n", s.ID, s.DisplayName(), status)
	}
}
