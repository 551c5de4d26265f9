// Command createuser adds a user directly to the store and prints its API key.
// It bootstraps the first admin account.
//
// The password is taken from -password, then CREATEUSER_PASSWORD, then the
// first line of stdin.
package main

import (
	"bufio"   // Reading the password from stdin
	"context" // Request context
	"errors"  // Missing password
	"flag"    // Command-line flags
	"fmt"     // Printing the API key
	"io"      // Password source
	"os"      // Environment and stdin
	"strings" // Line trimming

	"geo_ads/internal/config"  // Configuration
	"geo_ads/internal/db"      // Database connection
	"geo_ads/internal/service" // User creation

	"github.com/sirupsen/logrus" // Logging
	"gorm.io/gorm"               // GORM ORM library
)

// passwordEnv holds the password when it is not passed as a flag
const passwordEnv = "CREATEUSER_PASSWORD"

var errNoPassword = errors.New("password is required")

func main() {
	username := flag.String("username", "", "username of the new user")
	password := flag.String("password", "", "password of the new user (visible in ps; prefer $"+passwordEnv+" or stdin)")
	email := flag.String("email", "", "optional email address")
	isAdmin := flag.Bool("admin", false, "grant access to the admin routes")
	flag.Parse()

	if *username == "" {
		flag.Usage()
		logrus.Fatal("username is required")
	}
	pw, err := readPassword(*password, os.Getenv(passwordEnv), os.Stdin)
	if err != nil {
		logrus.Fatalf("failed to read password: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("failed to load config: %v", err)
	}
	gdb, err := db.Connect(cfg.DSN(), &gorm.Config{})
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err)
	}
	defer db.Close(gdb)
	if err := db.Migrate(gdb); err != nil {
		logrus.Fatalf("migration failed: %v", err)
	}

	user, err := service.New(gdb, cfg.PasswordCost).CreateUser(context.Background(), *username, pw, *email, *isAdmin)
	if err != nil {
		logrus.Fatalf("failed to create user: %v", err)
	}
	fmt.Println(user.APIKey)
}

// readPassword picks the first non-empty source: flag, environment, stdin line
func readPassword(flagValue, envValue string, stdin io.Reader) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if envValue != "" {
		return envValue, nil
	}
	line, err := bufio.NewReader(stdin).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	line = strings.TrimRight(line, "\r\n")
	if line == "" {
		return "", errNoPassword
	}
	return line, nil
}
