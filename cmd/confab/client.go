package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"confab/pkg/client"
	"confab/pkg/types"
)

func clientCmd() *cobra.Command {
	var (
		serverAddress string
		user          string
		password      string
	)

	cmd := &cobra.Command{
		Use:   "client",
		Short: "Talk to a scheduling server",
	}

	cmd.PersistentFlags().StringVarP(&serverAddress, "server", "s", "localhost:8101", "server front-door address")
	cmd.PersistentFlags().StringVarP(&user, "user", "u", "", "user name")
	cmd.PersistentFlags().StringVarP(&password, "password", "p", "", "password")

	newClient := func() (*client.Client, error) {
		return client.New(serverAddress, client.Handlers{
			OnFinalization: func(event string, date time.Time) {
				fmt.Printf("!! event %q finalized for %s\n", event, date.Format(time.RFC3339))
			},
			OnInvitation: func(event, author string) {
				fmt.Printf("!! %s invited you to %q\n", author, event)
			},
		}, setupLogger(verbose))
	}

	// withSession logs in, runs fn, and logs out again.
	withSession := func(fn func(ctx context.Context, c *client.Client) error) error {
		c, err := newClient()
		if err != nil {
			return err
		}
		defer c.Close()

		ctx := context.Background()
		if err := c.Login(ctx, user, password); err != nil {
			return err
		}
		defer c.Logout(ctx)

		return fn(ctx, c)
	}

	registerCmd := &cobra.Command{
		Use:   "register",
		Short: "Register a new user on this server",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}
			defer c.Close()

			ok, err := c.Register(context.Background(), user, password)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("user name %q is already taken", user)
			}
			fmt.Printf("Registered %q\n", user)
			return nil
		},
	}

	createCmd := &cobra.Command{
		Use:   "create <event> <location> <duration-minutes>",
		Short: "Create a new event",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(func(ctx context.Context, c *client.Client) error {
				var duration int
				if _, err := fmt.Sscanf(args[2], "%d", &duration); err != nil {
					return fmt.Errorf("bad duration %q", args[2])
				}
				ok, err := c.Create(ctx, args[0], args[1], duration)
				if err != nil {
					return err
				}
				if !ok {
					return fmt.Errorf("event name %q is already taken", args[0])
				}
				fmt.Printf("Created %q\n", args[0])
				return nil
			})
		},
	}

	addDateCmd := &cobra.Command{
		Use:   "add-date <event> <rfc3339-date>",
		Short: "Propose a date option for an event",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(func(ctx context.Context, c *client.Client) error {
				date, err := time.Parse(time.RFC3339, args[1])
				if err != nil {
					return fmt.Errorf("bad date %q: %w", args[1], err)
				}
				added, err := c.AddDate(ctx, args[0], date)
				if err != nil {
					return err
				}
				if !added {
					fmt.Println("Date was already proposed")
					return nil
				}
				fmt.Println("Date added")
				return nil
			})
		},
	}

	inviteCmd := &cobra.Command{
		Use:   "invite <event> <user>",
		Short: "Invite a user to an event",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(func(ctx context.Context, c *client.Client) error {
				if err := c.Invite(ctx, args[0], args[1]); err != nil {
					return err
				}
				fmt.Printf("Invited %q to %q\n", args[1], args[0])
				return nil
			})
		},
	}

	voteCmd := &cobra.Command{
		Use:   "vote <event> <rfc3339-date>...",
		Short: "Vote for date options of an event",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(func(ctx context.Context, c *client.Client) error {
				dates, err := types.ParseDates(args[1:])
				if err != nil {
					return fmt.Errorf("bad dates: %w", err)
				}
				accepted, err := c.Vote(ctx, args[0], dates)
				if err != nil {
					return err
				}
				if !accepted {
					return fmt.Errorf("you are not invited to %q", args[0])
				}
				fmt.Println("Vote recorded")
				return nil
			})
		},
	}

	finalizeCmd := &cobra.Command{
		Use:   "finalize <event>",
		Short: "Finalize an event on its most voted date",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(func(ctx context.Context, c *client.Client) error {
				date, err := c.Finalize(ctx, args[0])
				if err != nil {
					return err
				}
				fmt.Printf("Finalized %q for %s\n", args[0], date.Format(time.RFC3339))
				return nil
			})
		},
	}

	getCmd := &cobra.Command{
		Use:   "get <event>",
		Short: "Show an event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(func(ctx context.Context, c *client.Client) error {
				snap, err := c.Get(ctx, args[0])
				if err != nil {
					return err
				}
				printEvent(snap)
				return nil
			})
		},
	}

	listenCmd := &cobra.Command{
		Use:   "listen",
		Short: "Stay logged in and print incoming notifications",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(func(ctx context.Context, c *client.Client) error {
				fmt.Println("Listening for notifications, ^C to stop")
				sigCh := make(chan os.Signal, 1)
				signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
				<-sigCh
				return nil
			})
		},
	}

	cmd.AddCommand(registerCmd, createCmd, addDateCmd, inviteCmd, voteCmd, finalizeCmd, getCmd, listenCmd)
	return cmd
}
