package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/llehouerou/storyreel/internal/catalog"
	"github.com/llehouerou/storyreel/internal/chat"
	"github.com/llehouerou/storyreel/internal/completion"
	"github.com/llehouerou/storyreel/internal/errmsg"
)

var chatCmd = &cobra.Command{
	Use:   "chat EPISODE [BRANCH]",
	Short: "Chat with a character from the command line",
	Long: `Open the branch of an episode (by episode id, default branch 1) and chat
with its character line by line. An empty line or EOF ends the chat.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := loadCatalog()
		if err != nil {
			return err
		}
		ch, ep, tr, err := resolveBranch(cat, args)
		if err != nil {
			return errors.New(errmsg.Format(errmsg.OpChatOpen, err))
		}

		backend, err := completion.NewGemini(cmd.Context(), cfg.GetCompletionConfig())
		if err != nil {
			return errors.New(errmsg.Format(errmsg.OpInitialize, err))
		}
		if !backend.Configured() {
			return errors.New(errmsg.Format(errmsg.OpChatOpen, completion.ErrNotConfigured))
		}

		mgr := chat.NewManager(chat.Options{Logger: logger})
		mgr.Open(ch, ep.Label, tr.Hook)
		defer mgr.Close()

		return chatLoop(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), mgr, backend)
	},
}

// resolveBranch finds the episode named by args[0] and the 1-based branch
// in args[1] (default 1).
func resolveBranch(cat *catalog.Catalog, args []string) (catalog.Character, catalog.Episode, catalog.Trigger, error) {
	i := cat.IndexOf(args[0])
	if i < 0 {
		return catalog.Character{}, catalog.Episode{}, catalog.Trigger{}, fmt.Errorf("unknown episode %q", args[0])
	}
	ep := cat.Episodes[i]

	branch := 1
	if len(args) > 1 {
		n, err := strconv.Atoi(args[1])
		if err != nil {
			return catalog.Character{}, catalog.Episode{}, catalog.Trigger{}, fmt.Errorf("invalid branch %q", args[1])
		}
		branch = n
	}
	ch, tr, err := cat.Branch(ep, branch-1)
	if err != nil {
		return catalog.Character{}, catalog.Episode{}, catalog.Trigger{}, err
	}
	return ch, ep, tr, nil
}

// chatLoop prints the opening line, then sends each input line and prints
// the character's answer until an empty line or EOF.
func chatLoop(ctx context.Context, in io.Reader, out io.Writer, mgr *chat.Manager, backend chat.Backend) error {
	s, ok := mgr.Current()
	if !ok {
		return errors.New("no open chat session")
	}
	name := s.Character.Name
	if name == "" {
		name = s.Character.ID
	}
	printed := 0
	flush := func() {
		s, _ := mgr.Current()
		for _, msg := range s.Messages[printed:] {
			if msg.Role == chat.RoleModel {
				fmt.Fprintf(out, "%s: %s\n", name, msg.Text)
			}
		}
		printed = len(s.Messages)
	}
	flush()

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		mgr.Send(ctx, backend, line)
		flush()
	}
}
