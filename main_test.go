package main

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/storyreel/internal/catalog"
	"github.com/llehouerou/storyreel/internal/chat"
	"github.com/llehouerou/storyreel/internal/state"
)

func TestPrintCatalog(t *testing.T) {
	cat := catalog.Default()
	var buf bytes.Buffer

	saved := &state.ResumeState{Catalog: cat.Title, EpisodeID: "ep2", UpdatedAt: time.Now().Add(-3 * time.Hour)}
	printCatalog(&buf, cat, map[string]int{"ep2": 3}, saved)

	out := buf.String()
	assert.Contains(t, out, "Last watched 3 hours ago")
	assert.True(t, strings.HasPrefix(out, cat.Title+" ("))
	assert.Contains(t, out, ">  2. EP 2")
	assert.Contains(t, out, "(seen 3)")
	assert.Contains(t, out, "1) Ask Mara what she heard [Mara Okafor]")
	assert.Contains(t, out, "0:48")
}

func TestPrintCatalog_NoSavedState(t *testing.T) {
	var buf bytes.Buffer

	printCatalog(&buf, catalog.Default(), nil, nil)

	assert.NotContains(t, buf.String(), "Last watched")
	assert.NotContains(t, buf.String(), ">")
}

func TestResolveBranch(t *testing.T) {
	cat := catalog.Default()

	ch, ep, tr, err := resolveBranch(cat, []string{"ep1"})
	require.NoError(t, err)
	assert.Equal(t, "mara", ch.ID)
	assert.Equal(t, "ep1", ep.ID)
	assert.Equal(t, cat.Episodes[0].Triggers[0].Hook, tr.Hook)

	ch, _, _, err = resolveBranch(cat, []string{"ep1", "2"})
	require.NoError(t, err)
	assert.Equal(t, "ilias", ch.ID)

	_, _, _, err = resolveBranch(cat, []string{"nope"})
	require.Error(t, err)

	_, _, _, err = resolveBranch(cat, []string{"ep1", "x"})
	require.Error(t, err)

	_, _, _, err = resolveBranch(cat, []string{"ep1", "9"})
	require.ErrorIs(t, err, catalog.ErrTriggerOutOfRange)
}

func TestChatLoop(t *testing.T) {
	cat := catalog.Default()
	ch, ep, tr, err := resolveBranch(cat, []string{"ep1"})
	require.NoError(t, err)

	mgr := chat.NewManager(chat.Options{})
	mgr.Open(ch, ep.Label, tr.Hook)

	var got []string
	backend := chat.BackendFunc(func(_ context.Context, req chat.Request) (string, error) {
		got = append(got, req.Message)
		if req.Message == "fail" {
			return "", errors.New("boom")
		}
		return "echo " + req.Message, nil
	})

	var out bytes.Buffer
	in := strings.NewReader("hello\nfail\n\nignored\n")
	require.NoError(t, chatLoop(context.Background(), in, &out, mgr, backend))

	assert.Equal(t, []string{"hello", "fail"}, got)
	text := out.String()
	assert.Contains(t, text, "Mara Okafor: "+tr.Hook)
	assert.Contains(t, text, "Mara Okafor: echo hello")
	assert.Contains(t, text, "Mara Okafor: "+chat.FallbackLine)
	assert.NotContains(t, text, "ignored")
}

func TestChatLoop_EOF(t *testing.T) {
	cat := catalog.Default()
	ch, ep, tr, err := resolveBranch(cat, []string{"ep2"})
	require.NoError(t, err)

	mgr := chat.NewManager(chat.Options{})
	mgr.Open(ch, ep.Label, tr.Hook)

	var out bytes.Buffer
	err = chatLoop(context.Background(), strings.NewReader(""), &out, mgr,
		chat.BackendFunc(func(context.Context, chat.Request) (string, error) { return "", nil }))

	require.NoError(t, err)
	assert.Contains(t, out.String(), tr.Hook)
}

func TestChatLoop_NoSession(t *testing.T) {
	err := chatLoop(context.Background(), strings.NewReader(""), &bytes.Buffer{}, chat.NewManager(chat.Options{}), nil)
	require.Error(t, err)
}
