package admin

import (
	"context"
	"fmt"

	"github.com/zirospace/zirospace-cms/internal/blogposts"
	"github.com/zirospace/zirospace-cms/internal/domain"
)

// BlogPosts is the collection type the pin coordinator works on.
type BlogPosts = Collection[blogposts.BlogPost, blogposts.CreateBlogPostInput, blogposts.BlogPostPatch]

// PinCoordinator keeps at most one pinned post per locale on the client
// while talking to a backend that only offers plain updates.
type PinCoordinator struct {
	posts *BlogPosts
}

func NewPinCoordinator(posts *BlogPosts) *PinCoordinator {
	return &PinCoordinator{posts: posts}
}

// Pin makes id the pinned post of locale. The previous pin is cleared
// first. Any failure restores the state observed before the call; when the
// previous pin was already cleared the error is a PartialFailureError and
// the previous pin is restored on the server on a best-effort basis.
func (p *PinCoordinator) Pin(ctx context.Context, locale domain.Locale, id string) error {
	c := p.posts
	before := c.snapshot(locale)

	var previous *blogposts.BlogPost
	for i := range before {
		if before[i].IsPinned && before[i].ID != id {
			prev := before[i]
			previous = &prev
			break
		}
	}

	c.dispatch(Action[blogposts.BlogPost]{Type: ActionRequest, Locale: locale})
	c.dispatch(Action[blogposts.BlogPost]{Type: ActionSuccess, Mutation: MutationReplace, Locale: locale,
		Items: withPin(before, id)})

	callCtx, cancel := c.call(ctx)
	defer cancel()

	var (
		completed []string
		confirmed []blogposts.BlogPost
	)
	if previous != nil {
		unpinned, err := c.backend.Update(callCtx, previous.ID, blogposts.BlogPostPatch{IsPinned: boolPtr(false)}, locale)
		if err != nil {
			return p.rollback(locale, before, "unpin "+previous.ID, err)
		}
		completed = append(completed, "unpin "+previous.ID)
		confirmed = append(confirmed, *unpinned)
	}

	pinned, err := c.backend.Update(callCtx, id, blogposts.BlogPostPatch{IsPinned: boolPtr(true)}, locale)
	if err != nil {
		step := "pin " + id
		if len(completed) == 0 {
			return p.rollback(locale, before, step, err)
		}
		p.compensate(ctx, locale, previous.ID)
		partial := &domain.PartialFailureError{Op: "pin blog post", Completed: completed, Failed: step, Err: err}
		return p.rollback(locale, before, step, partial)
	}

	c.dispatch(Action[blogposts.BlogPost]{Type: ActionSuccess, Mutation: MutationUpsert, Locale: locale,
		Items: append(confirmed, *pinned), Settled: true})
	c.opts.revalidate(c.entity, locale)
	return nil
}

// Unpin clears the pin of id, restoring local state when the update fails.
func (p *PinCoordinator) Unpin(ctx context.Context, locale domain.Locale, id string) error {
	c := p.posts
	before := c.snapshot(locale)

	c.dispatch(Action[blogposts.BlogPost]{Type: ActionRequest, Locale: locale})
	c.dispatch(Action[blogposts.BlogPost]{Type: ActionSuccess, Mutation: MutationReplace, Locale: locale,
		Items: withoutPin(before, id)})

	callCtx, cancel := c.call(ctx)
	defer cancel()

	updated, err := c.backend.Update(callCtx, id, blogposts.BlogPostPatch{IsPinned: boolPtr(false)}, locale)
	if err != nil {
		return p.rollback(locale, before, "unpin "+id, err)
	}
	c.dispatch(Action[blogposts.BlogPost]{Type: ActionSuccess, Mutation: MutationUpsert, Locale: locale,
		Items: []blogposts.BlogPost{*updated}, Settled: true})
	c.opts.revalidate(c.entity, locale)
	return nil
}

func (p *PinCoordinator) rollback(locale domain.Locale, before []blogposts.BlogPost, step string, err error) error {
	c := p.posts
	c.opts.logger.Warn("pin change rolled back",
		"entity", c.entity, "locale", locale.String(), "step", step, "kind", domain.KindOf(err).String(), "error", err)
	c.dispatch(Action[blogposts.BlogPost]{Type: ActionRollback, Locale: locale, Items: before})
	c.dispatch(Action[blogposts.BlogPost]{Type: ActionFailure, Locale: locale, Err: err})
	return err
}

// compensate re-pins previousID after a half-applied pin. Its outcome only
// gets logged; the caller already reports the partial failure.
func (p *PinCoordinator) compensate(ctx context.Context, locale domain.Locale, previousID string) {
	c := p.posts
	callCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.opts.timeout)
	defer cancel()

	if _, err := c.backend.Update(callCtx, previousID, blogposts.BlogPostPatch{IsPinned: boolPtr(true)}, locale); err != nil {
		c.opts.logger.Warn("pin compensation failed",
			"entity", c.entity, "locale", locale.String(), "id", previousID, "error", fmt.Errorf("re-pin: %w", err))
		return
	}
	c.opts.logger.Warn("pin compensation restored previous pin",
		"entity", c.entity, "locale", locale.String(), "id", previousID)
}

// withPin returns a copy of posts where only id is pinned.
func withPin(posts []blogposts.BlogPost, id string) []blogposts.BlogPost {
	out := make([]blogposts.BlogPost, len(posts))
	for i, post := range posts {
		post.IsPinned = post.ID == id
		out[i] = post
	}
	return out
}

func withoutPin(posts []blogposts.BlogPost, id string) []blogposts.BlogPost {
	out := make([]blogposts.BlogPost, len(posts))
	for i, post := range posts {
		if post.ID == id {
			post.IsPinned = false
		}
		out[i] = post
	}
	return out
}

func boolPtr(v bool) *bool { return &v }
