// Copyright (c) 2025 Tokenlogin
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"time"

	"atomicgo.dev/cursor"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"tokenlogin/cli/internal/auth"
	apperrors "tokenlogin/cli/internal/errors"
	"tokenlogin/cli/internal/httperrors"
	"tokenlogin/cli/internal/logging"
	"tokenlogin/cli/internal/login"
	"tokenlogin/cli/internal/terminal"
)

var (
	loginID       string
	loginPassword string
)

// errInterrupted is returned when the login screen is torn down before the
// attempt completes.
var errInterrupted = stderrors.New("login interrupted")

// loginCmd represents the login command.
// It plays the role of the login screen: the holder lives exactly as long as
// the command, field values come from flags or prompts, and the result is
// rendered once the attempt settles.
var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in with an id and password",
	Long: `The login command exchanges an id and password for a session token and stores
the token in the keychain. Missing values are prompted for; the password is read
without echo on a terminal.

If a token is already stored the command reports that and does nothing else.
Run 'tokenlogin logout' first to log in as someone else.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		repo, err := openRepository()
		if err != nil {
			return err
		}
		return runLogin(cmd.Context(), repo, promptFor(cmd), cmd.OutOrStdout())
	},
}

// promptFor returns a terminal-aware prompter when stdin is the process stdin.
func promptFor(cmd *cobra.Command) *terminal.Prompter {
	if f, ok := cmd.InOrStdin().(*os.File); ok {
		return terminal.NewPrompter(f, cmd.OutOrStdout())
	}
	return terminal.NewReaderPrompter(cmd.InOrStdin(), cmd.OutOrStdout())
}

func runLogin(ctx context.Context, repo *auth.Repository, p *terminal.Prompter, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}

	h := login.New(ctx, repo, login.WithCredentials(loginID, loginPassword))
	defer h.Close()

	select {
	case <-h.Ready():
	case <-ctx.Done():
		return errInterrupted
	}
	if h.State().Status == login.StatusLoggedIn {
		pterm.Info.Println("Already logged in. Run 'tokenlogin whoami' to see the session.")
		return nil
	}

	if err := fillCredentials(h, p); err != nil {
		return err
	}

	updates, unsubscribe := h.Subscribe()
	defer unsubscribe()

	h.Login()
	s, err := awaitSettled(updates, p.Interactive())
	if err != nil {
		return err
	}

	if s.Status == login.StatusLoggedIn {
		token, err := repo.CurrentToken(ctx)
		if err != nil {
			return err
		}
		pterm.Success.Printfln("Logged in as %s", s.ID)
		fmt.Fprintf(out, "Token: %s\n", logging.MaskToken(token))
		return nil
	}
	return presentFailure(out, s)
}

// fillCredentials prompts for whichever field is still empty.
func fillCredentials(h *login.Holder, p *terminal.Prompter) error {
	s := h.State()
	if s.ID == "" {
		const label = "ID: "
		id, err := p.Line(label)
		if err != nil {
			return fmt.Errorf("read id: %w", err)
		}
		h.ChangeID(id)
	}
	if s.Password == "" {
		const label = "Password: "
		pw, err := p.Secret(label)
		if err != nil {
			return fmt.Errorf("read password: %w", err)
		}
		if p.Interactive() {
			terminal.ClearPreviousLines(len(label))
		}
		h.ChangePassword(pw)
	}
	return nil
}

// awaitSettled reads snapshots until the attempt started by Login is no longer
// pending, showing a spinner in the meantime.
func awaitSettled(updates <-chan login.UIState, spin bool) (login.UIState, error) {
	var stop func()
	defer func() {
		if stop != nil {
			stop()
			cursor.Show()
		}
	}()

	for s := range updates {
		if s.Pending {
			if spin && stop == nil {
				cursor.Hide()
				stop = startInlineSpinner(os.Stderr, "Logging in", []string{"|", "/", "-", "\\"}, 120*time.Millisecond)
			}
			continue
		}
		if s.Status != login.StatusNone {
			return s, nil
		}
	}
	return login.UIState{}, errInterrupted
}

// presentFailure renders a failed attempt on out. The returned error only
// carries the exit status; its notice has been printed already.
func presentFailure(out io.Writer, s login.UIState) error {
	if s.Err == nil {
		s.Err = apperrors.New(s.Failure, "login failed")
	}
	if s.Failure == apperrors.TransportFailed {
		err := httperrors.Report(out, s.Err, "logging in", httperrors.ExtractHostFromURL(appConfig.BaseURL))
		return reportedError{err: err}
	}

	detail := ""
	var e *apperrors.E
	if stderrors.As(s.Err, &e) {
		detail = e.Message
	}
	logging.PresentLoginFailure(out, s.Failure, detail)
	return reportedError{err: fmt.Errorf("login failed: %w", s.Err)}
}

func init() {
	loginCmd.Flags().StringVar(&loginID, "id", "", "Login id (prompted when empty)")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "Password (prompted when empty; prefer the prompt)")
	rootCmd.AddCommand(loginCmd)
}
