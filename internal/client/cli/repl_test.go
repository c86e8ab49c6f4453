package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeExec struct {
	loggedIn bool
	err      error

	calls []string
}

func (f *fakeExec) record(s string) error {
	f.calls = append(f.calls, s)
	return f.err
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) Register(context.Context) error {
	return f.record("register")
}
func (f *fakeExec) Login(context.Context) error {
	f.loggedIn = true
	return f.record("login")
}
func (f *fakeExec) Logout(context.Context) error {
	f.loggedIn = false
	return f.record("logout")
}
func (f *fakeExec) WhoAmI(context.Context) error { return f.record("whoami") }
func (f *fakeExec) Ping(context.Context) error   { return f.record("ping") }
func (f *fakeExec) Feed(context.Context) error   { return f.record("feed") }
func (f *fakeExec) Post(context.Context) error   { return f.record("post") }
func (f *fakeExec) Edit(_ context.Context, id string) error {
	return f.record("edit " + id)
}
func (f *fakeExec) Delete(_ context.Context, id string) error {
	return f.record("delete " + id)
}
func (f *fakeExec) Like(_ context.Context, id string) error {
	return f.record("like " + id)
}
func (f *fakeExec) Image(_ context.Context, id, path string) error {
	return f.record(strings.TrimSpace("image " + id + " " + path))
}

func capturePrints(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		lines = append(lines, strings.TrimSuffix(fmt.Sprintln(a...), "\n"))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &lines
}

func TestRunREPL_Dispatch(t *testing.T) {
	out := capturePrints(t)

	input := strings.Join([]string{
		"help",
		"login",
		"help",
		"",
		"feed",
		"post",
		"edit p1",
		"like p1",
		"image p1",
		"image p1 /tmp/cat.png",
		"delete p1",
		"whoami",
		"ping",
		"logout",
		"foobar",
		"exit",
		"feed",
	}, "\n")

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "status" }, rdr(input))

	assert.Equal(t, []string{
		"login", "feed", "post", "edit p1", "like p1", "image p1",
		"image p1 /tmp/cat.png", "delete p1", "whoami", "ping", "logout",
	}, exec.calls, "nothing after exit runs")

	assert.Contains(t, *out, helpGuest)
	assert.Contains(t, *out, helpMember)
	assert.Contains(t, *out, "Unknown command: foobar")
	assert.Contains(t, *out, "postboard (status)> ")
	assert.Equal(t, "Bye!", (*out)[len(*out)-1])
}

func TestRunREPL_UsageErrors(t *testing.T) {
	out := capturePrints(t)
	exec := &fakeExec{loggedIn: true}

	runREPL(context.Background(), exec, func() string { return "" }, rdr("edit\ndelete a b\nlike\nimage\nimage a b c\n"))

	assert.Empty(t, exec.calls)
	assert.Contains(t, *out, "Usage: edit <post-id>")
	assert.Contains(t, *out, "Usage: delete <post-id>")
	assert.Contains(t, *out, "Usage: like <post-id>")
	assert.Contains(t, *out, "Usage: image <post-id> [file]")
}

func TestRunREPL_PrintsCommandErrorsAndContinues(t *testing.T) {
	out := capturePrints(t)
	exec := &fakeExec{loggedIn: true, err: errors.New("kaboom")}

	runREPL(context.Background(), exec, func() string { return "" }, rdr("feed\nping"))

	assert.Equal(t, []string{"feed", "ping"}, exec.calls, "last line without newline still runs")
	n := 0
	for _, l := range *out {
		if l == "Error: kaboom" {
			n++
		}
	}
	assert.Equal(t, 2, n)
}
