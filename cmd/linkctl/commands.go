package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/Totarae/brevly/internal/frontend"
	"github.com/Totarae/brevly/internal/model"
	"github.com/Totarae/brevly/pkg/client"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const defaultAPIURL = "http://localhost:8080"

type rootOptions struct {
	apiURL  string
	timeout time.Duration
}

func newRootCmd(logger *zap.Logger) *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "linkctl",
		Short:         "Manage short links",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	apiURL := os.Getenv("BREVLY_API_URL")
	if apiURL == "" {
		apiURL = defaultAPIURL
	}
	root.PersistentFlags().StringVar(&opts.apiURL, "api", apiURL, "API base URL (env BREVLY_API_URL)")
	root.PersistentFlags().DurationVar(&opts.timeout, "timeout", 10*time.Second, "HTTP request timeout")

	root.AddCommand(
		newListCmd(opts),
		newCreateCmd(opts),
		newOpenCmd(opts),
		newDeleteCmd(opts),
		newDownloadCmd(opts),
		newServeRedirectCmd(opts, logger),
	)
	return root
}

func (o *rootOptions) client() *client.Client {
	return client.New(o.apiURL, client.WithHTTPClient(&http.Client{Timeout: o.timeout}))
}

// userError ошибка с текстом, понятным пользователю.
func userError(action string, err error) error {
	return fmt.Errorf("%s: %s", action, client.Message(err))
}

func newListCmd(opts *rootOptions) *cobra.Command {
	var (
		pageSize int
		all      bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List short links, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s := newSession(opts.client(), pageSize)

			for {
				if _, err := s.loadPage(cmd.Context()); err != nil {
					return userError("list links", err)
				}
				if !all || !s.pager.HasNext() {
					break
				}
			}
			return printLinks(cmd.OutOrStdout(), s.links.Links(), s.pager.Total())
		},
	}
	cmd.Flags().IntVar(&pageSize, "page-size", model.DefaultPageSize, "links per page")
	cmd.Flags().BoolVar(&all, "all", false, "fetch every page")
	return cmd
}

func newCreateCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "create ORIGINAL_URL SHORT_URL",
		Short: "Create a short link",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := newSession(opts.client(), 0)

			link, err := s.create(cmd.Context(), model.CreateLinkRequest{OriginalURL: args[0], ShortURL: args[1]})
			if err != nil {
				return userError("create link", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created %s -> %s\n", link.ShortURL, link.OriginalURL)
			return nil
		},
	}
}

func newOpenCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "open SHORT_URL",
		Short: "Resolve a short link and count the visit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := opts.client().Resolve(cmd.Context(), args[0])
			if err != nil {
				return userError("open link", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), target)
			return nil
		},
	}
}

func newDeleteCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete SHORT_URL",
		Short: "Delete a short link",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := newSession(opts.client(), 0)

			id, err := s.delete(cmd.Context(), args[0])
			if err != nil {
				return userError("delete link", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %s (%s)\n", args[0], id)
			return nil
		},
	}
}

func newDownloadCmd(opts *rootOptions) *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "download",
		Short: "Download all links as CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			export, err := opts.client().Download(cmd.Context())
			if err != nil {
				return userError("download csv", err)
			}

			path := filepath.Join(dir, filepath.Base(export.Filename))
			if err := os.WriteFile(path, export.Body, 0o644); err != nil {
				return fmt.Errorf("save csv: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "dir", ".", "directory to save the file to")
	return cmd
}

func newServeRedirectCmd(opts *rootOptions, logger *zap.Logger) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve-redirect",
		Short: "Serve GET /{short_url} redirects backed by the API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serveRedirect(cmd.Context(), addr, opts.client(), logger)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "localhost:5173", "listen address")
	return cmd
}

func serveRedirect(ctx context.Context, addr string, api *client.Client, logger *zap.Logger) error {
	srv := &http.Server{Addr: addr, Handler: frontend.NewRouter(api, logger)}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("redirect server listening", zap.String("address", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
