package main

import (
	"errors"
	"fmt"
	"os"

	"portfolio-backend/pkg/contactform"

	"github.com/spf13/cobra"
)

const defaultServer = "http://localhost:3001"

type sendOptions struct {
	name    string
	email   string
	message string
}

func newRootCmd() *cobra.Command {
	var server string

	root := &cobra.Command{
		Use:          "contact",
		Short:        "Portfolio contact form client",
		SilenceUsage: true,
	}

	fallback := os.Getenv("CONTACT_SERVER")
	if fallback == "" {
		fallback = defaultServer
	}
	root.PersistentFlags().StringVarP(&server, "server", "s", fallback, "Relay server base URL (or set CONTACT_SERVER)")

	root.AddCommand(newSendCmd(&server), newHealthCmd(&server))
	return root
}

func newSendCmd(server *string) *cobra.Command {
	opts := &sendOptions{}

	cmd := &cobra.Command{
		Use:     "send",
		Short:   "Validate and submit a contact message",
		Example: `  contact send --name "Jo" --email jo@example.com --message "Hello there friend"`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSend(cmd, *server, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.name, "name", "n", "", "Your name")
	cmd.Flags().StringVarP(&opts.email, "email", "e", "", "Your email address")
	cmd.Flags().StringVarP(&opts.message, "message", "m", "", "Message body")
	return cmd
}

func runSend(cmd *cobra.Command, server string, opts *sendOptions) error {
	out := cmd.OutOrStdout()

	ctrl := contactform.NewController(contactform.NewHTTPSubmitter(server, nil),
		contactform.WithOnChange(func(st contactform.State) {
			if st.Status == contactform.StatusSubmitting {
				fmt.Fprintln(out, "Sending...")
			}
		}),
	)
	defer ctrl.Close()

	ctrl.SetField(contactform.FieldName, opts.name)
	ctrl.SetField(contactform.FieldEmail, opts.email)
	ctrl.SetField(contactform.FieldMessage, opts.message)

	err := ctrl.Submit(cmd.Context())
	st := ctrl.Snapshot()

	switch {
	case errors.Is(err, contactform.ErrInvalidForm):
		for _, field := range contactform.Fields {
			if msg, ok := st.Errors[field]; ok {
				fmt.Fprintf(out, "  %s %q: %s\n", field, st.Form.Get(field), msg)
			}
		}
		return err
	case err != nil:
		return errors.New(st.Reason)
	}

	notice := st.Notice
	if notice == "" {
		notice = "Message sent successfully!"
	}
	fmt.Fprintln(out, notice)
	return nil
}

func newHealthCmd(server *string) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check that the relay server is up",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			hs, err := contactform.NewHTTPSubmitter(*server, nil).Health(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", hs.Status, hs.Message)
			return nil
		},
	}
}
