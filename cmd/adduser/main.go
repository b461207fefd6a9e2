// adduser creates an account from the command line.
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/expense-tracker/backend/internal/controllers/account"
	"github.com/expense-tracker/backend/internal/models"
	"github.com/expense-tracker/backend/internal/validation"
	"github.com/gin-gonic/gin/binding"
	"golang.org/x/exp/slices"
	"golang.org/x/term"
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("adduser", flag.ContinueOnError)
	fs.SetOutput(stderr)

	username := fs.String("user", "", "Username")
	email := fs.String("email", "", "Email address")
	passwordFlag := fs.String("password", "", "Password, prompted for if omitted")
	dsn := fs.String("db", filepath.Join("data", "gorm.db"), "SQLite file or postgres:// URL")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if *username == "" || *email == "" {
		fmt.Fprintln(stdout, "Usage: adduser -user <username> -email <email> [-password <password>] [-db <path>]")
		fs.PrintDefaults()
		return errors.New("missing required flags: user, email")
	}

	password := *passwordFlag
	if password == "" {
		fmt.Fprint(stdout, "Password: ")
		var err error
		password, err = readPassword(stdin)
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}
		fmt.Fprintln(stdout)
	}

	err := validate(account.RegisterForm{
		Username:  *username,
		Email:     *email,
		Password:  password,
		Password2: password,
	})
	if err != nil {
		return err
	}

	err = connect(*dsn)
	if err != nil {
		return err
	}
	defer func() {
		if sqlDB, err := models.DB.DB(); err == nil {
			sqlDB.Close()
		}
	}()

	user := models.User{Username: *username, Email: *email}
	err = user.SetPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	err = models.DB.Create(&user).Error
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	fmt.Fprintf(stdout, "User %s created successfully with ID %s\n", user.Username, user.ID)
	return nil
}

// validate applies the registration form rules to the account data.
func validate(form account.RegisterForm) error {
	err := validation.Register()
	if err != nil {
		return err
	}

	err = binding.Validator.ValidateStruct(form)
	if err == nil {
		return nil
	}

	messages := validation.Messages(err)
	problems := make([]string, 0, len(messages))
	for field, message := range messages {
		problems = append(problems, fmt.Sprintf("%s: %s", field, message))
	}
	slices.Sort(problems)

	return fmt.Errorf("invalid account data: %s", strings.Join(problems, "; "))
}

func connect(dsn string) error {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		return models.ConnectPostgres(dsn)
	}

	err := os.MkdirAll(filepath.Dir(dsn), os.ModePerm)
	if err != nil {
		return err
	}

	return models.Connect(dsn)
}

func readPassword(stdin io.Reader) (string, error) {
	if f, ok := stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		password, err := term.ReadPassword(int(f.Fd()))
		if err != nil {
			return "", err
		}
		return string(password), nil
	}

	// Pipes and tests
	scanner := bufio.NewScanner(stdin)
	if scanner.Scan() {
		return scanner.Text(), nil
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}
