package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dmitrijs2005/postboard/internal/api"
	"github.com/dmitrijs2005/postboard/internal/common"
)

func (a *App) Feed(ctx context.Context) error {
	posts, err := a.feedService.List(ctx)
	if err != nil {
		return err
	}
	if len(posts) == 0 {
		fmt.Fprintln(a.out, "The feed is empty.")
		return nil
	}

	me, _ := a.authService.CurrentUser()
	for _, p := range posts {
		printPost(a.out, p, me.ID)
	}
	return nil
}

func (a *App) Post(ctx context.Context) error {
	text, err := getMultiline(a.reader, "Write your post", a.out)
	if err != nil {
		return err
	}

	p, err := a.feedService.Create(ctx, text)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Posted %s\n", p.ID)
	return nil
}

func (a *App) Edit(ctx context.Context, id string) error {
	text, err := getMultiline(a.reader, "New text", a.out)
	if err != nil {
		return err
	}

	p, err := a.feedService.Update(ctx, id, text)
	if err != nil {
		return err
	}
	me, _ := a.authService.CurrentUser()
	printPost(a.out, *p, me.ID)
	return nil
}

func (a *App) Delete(ctx context.Context, id string) error {
	if err := a.feedService.Delete(ctx, id); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Post removed")
	return nil
}

func (a *App) Like(ctx context.Context, id string) error {
	p, err := a.feedService.ToggleLike(ctx, id)
	if err != nil {
		return err
	}

	me, _ := a.authService.CurrentUser()
	verb := "Unliked"
	if common.ContainsUserID(p.Likes, me.ID) {
		verb = "Liked"
	}
	fmt.Fprintf(a.out, "%s. The post now has %d like(s).\n", verb, len(p.Likes))
	return nil
}

// Image uploads path as the picture of post id, or prints the picture URL
// when path is empty.
func (a *App) Image(ctx context.Context, id, path string) error {
	if path == "" {
		u, err := a.feedService.ImageURL(ctx, id)
		if err != nil {
			return err
		}
		fmt.Fprintln(a.out, u)
		return nil
	}

	key, err := a.feedService.AttachImage(ctx, id, path)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Image uploaded (%s)\n", key)
	return nil
}

func printPost(w io.Writer, p api.Post, me common.UserID) {
	var flags []string
	if !me.IsZero() && p.User.ID.Equal(me) {
		flags = append(flags, "yours")
	}
	if !me.IsZero() && common.ContainsUserID(p.Likes, me) {
		flags = append(flags, "liked")
	}
	if p.ImageKey != "" {
		flags = append(flags, "image")
	}

	suffix := ""
	if len(flags) > 0 {
		suffix = " [" + strings.Join(flags, ", ") + "]"
	}

	fmt.Fprintf(w, "%s  %s  %s  likes: %d%s\n", p.ID, p.User.Name, p.CreatedAt.Local().Format(time.DateTime), len(p.Likes), suffix)
	for _, line := range strings.Split(p.Text, "\n") {
		fmt.Fprintf(w, "    %s\n", line)
	}
}
