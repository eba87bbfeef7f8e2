package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"tenant-platform/internal/config"
	"tenant-platform/internal/logging"
	"tenant-platform/internal/portal"
)

type app struct {
	configPath  string
	apiURL      string
	sessionPath string
	verbose     bool

	in     *bufio.Reader
	out    io.Writer
	client *portal.Client
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd(os.Stdin, os.Stdout).ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(stdin io.Reader, stdout io.Writer) *cobra.Command {
	a := &app{in: bufio.NewReader(stdin), out: stdout}

	root := &cobra.Command{
		Use:           "portalctl",
		Short:         "Sign in to the investor portal and manage your profile",
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			level := "warn"
			if a.verbose {
				level = "debug"
			}
			logging.Setup(level, true)

			if a.apiURL == "" {
				cfg, err := config.Read(a.configPath)
				if err != nil {
					return err
				}
				a.apiURL = cfg.Portal.APIURL
			}
			if a.apiURL == "" {
				return errors.New("portal API URL is required (--api-url, PORTAL_API_URL or portal.api_url)")
			}
			if a.sessionPath == "" {
				p, err := portal.DefaultPath()
				if err != nil {
					return err
				}
				a.sessionPath = p
			}
			a.client = portal.NewClient(a.apiURL, portal.NewFileStore(a.sessionPath), nil)
			return nil
		},
	}
	root.SetIn(stdin)
	root.SetOut(stdout)

	root.PersistentFlags().StringVar(&a.configPath, "config", "config.yaml", "config file")
	root.PersistentFlags().StringVar(&a.apiURL, "api-url", "", "portal auth API base URL")
	root.PersistentFlags().StringVar(&a.sessionPath, "session", "", "session file (default ~/.config/portalctl/session.json)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(a.loginCmd(), a.registerCmd(), a.profileCmd(), a.logoutCmd())
	return root
}

func (a *app) loginCmd() *cobra.Command {
	login := &cobra.Command{
		Use:   "login",
		Short: "Sign in with a one-time code or a wallet signature",
	}

	var code string
	otp := func(channel string, request func(context.Context, string) error, verify func(context.Context, string, string) (*portal.Session, error)) *cobra.Command {
		cmd := &cobra.Command{
			Use:   channel + " <" + channel + ">",
			Short: "Sign in with a code sent to your " + channel,
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				ctx := cmd.Context()
				if code == "" {
					if err := request(ctx, args[0]); err != nil {
						return err
					}
					c, err := a.prompt("Code sent to " + args[0] + ": ")
					if err != nil {
						return err
					}
					code = c
				}
				s, err := verify(ctx, args[0], code)
				if err != nil {
					return err
				}
				return a.greet(s)
			},
		}
		cmd.Flags().StringVar(&code, "code", "", "verify this code instead of requesting a new one")
		return cmd
	}

	var signature string
	wallet := &cobra.Command{
		Use:   "wallet <address>",
		Short: "Sign in by signing a challenge with your wallet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if signature == "" {
				ch, err := a.client.WalletNonce(ctx, args[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(a.out, "Sign this message with %s:\n\n%s\n\n", args[0], ch.Message)
				sig, err := a.prompt("Signature: ")
				if err != nil {
					return err
				}
				signature = sig
			}
			s, err := a.client.WalletLogin(ctx, args[0], signature)
			if err != nil {
				return err
			}
			return a.greet(s)
		},
	}
	wallet.Flags().StringVar(&signature, "signature", "", "signature of a previously fetched challenge")

	login.AddCommand(
		otp("phone", a.clientRequestPhone, a.clientVerifyPhone),
		otp("email", a.clientRequestEmail, a.clientVerifyEmail),
		wallet,
	)
	return login
}

// The client is built in PersistentPreRunE, after the commands exist.
func (a *app) clientRequestPhone(ctx context.Context, v string) error {
	return a.client.RequestPhoneOTP(ctx, v)
}

func (a *app) clientVerifyPhone(ctx context.Context, v, code string) (*portal.Session, error) {
	return a.client.VerifyPhoneOTP(ctx, v, code)
}

func (a *app) clientRequestEmail(ctx context.Context, v string) error {
	return a.client.RequestEmailOTP(ctx, v)
}

func (a *app) clientVerifyEmail(ctx context.Context, v, code string) (*portal.Session, error) {
	return a.client.VerifyEmailOTP(ctx, v, code)
}

func (a *app) registerCmd() *cobra.Command {
	var in portal.RegisterInput
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Complete your profile after the first sign in",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if in.Role != portal.RoleInvestor && in.Role != portal.RoleProjectOwner {
				return fmt.Errorf("--role must be %s or %s", portal.RoleInvestor, portal.RoleProjectOwner)
			}
			u, err := a.client.Register(cmd.Context(), in)
			if err != nil {
				return err
			}
			return a.print(u)
		},
	}
	cmd.Flags().StringVar(&in.Name, "name", "", "full name")
	cmd.Flags().StringVar(&in.Email, "email", "", "email address")
	cmd.Flags().StringVar(&in.Phone, "phone", "", "phone number")
	cmd.Flags().StringVar(&in.Role, "role", portal.RoleInvestor, "investor or project_owner")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func (a *app) profileCmd() *cobra.Command {
	profile := &cobra.Command{
		Use:   "profile",
		Short: "Show or edit your profile",
	}

	get := &cobra.Command{
		Use:   "get",
		Short: "Print your profile",
		RunE: func(cmd *cobra.Command, _ []string) error {
			u, err := a.client.Profile(cmd.Context())
			if err != nil {
				return err
			}
			return a.print(u)
		},
	}

	var name, email, phone string
	set := &cobra.Command{
		Use:   "set",
		Short: "Update profile fields",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var upd portal.ProfileUpdate
			if cmd.Flags().Changed("name") {
				upd.Name = &name
			}
			if cmd.Flags().Changed("email") {
				upd.Email = &email
			}
			if cmd.Flags().Changed("phone") {
				upd.Phone = &phone
			}
			if upd.Name == nil && upd.Email == nil && upd.Phone == nil {
				return errors.New("nothing to update")
			}
			u, err := a.client.UpdateProfile(cmd.Context(), upd)
			if err != nil {
				return err
			}
			return a.print(u)
		},
	}
	set.Flags().StringVar(&name, "name", "", "full name")
	set.Flags().StringVar(&email, "email", "", "email address")
	set.Flags().StringVar(&phone, "phone", "", "phone number")

	profile.AddCommand(get, set)
	return profile
}

func (a *app) logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and forget the stored session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.client.Logout(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(a.out, "Signed out.")
			return nil
		},
	}
}

func (a *app) prompt(label string) (string, error) {
	fmt.Fprint(a.out, label)
	line, err := a.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (a *app) greet(s *portal.Session) error {
	if s.User != nil && !s.User.Registered {
		fmt.Fprintln(a.out, "Signed in. Finish your profile with: portalctl register --name ...")
		return nil
	}
	fmt.Fprintln(a.out, "Signed in.")
	return nil
}

func (a *app) print(v any) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
