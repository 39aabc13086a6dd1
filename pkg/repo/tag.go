package repo

import (
	"fmt"
	"strings"
	"time"

	"github.com/odvcencio/oz/pkg/object"
)

// CreateTag creates or updates a lightweight tag ref under refs/tags/.
func (r *Repo) CreateTag(name string, target object.Hash, force bool) error {
	name = strings.TrimSpace(name)
	if err := validateTagName(name); err != nil {
		return fmt.Errorf("create tag: %w", err)
	}
	if !r.Store.Has(target) {
		return fmt.Errorf("create tag: target %s: %w", target, object.ErrNotFound)
	}
	if err := r.checkTagFree(name, force); err != nil {
		return fmt.Errorf("create tag: %w", err)
	}
	if err := r.UpdateRef("refs/tags/"+name, target); err != nil {
		return fmt.Errorf("create tag: %w", err)
	}
	return nil
}

// CreateAnnotatedTag writes a tag object pointing at target and points
// refs/tags/<name> at it. The tag payload uses the same header layout as
// commits: object, type, tag and tagger headers, then the message.
func (r *Repo) CreateAnnotatedTag(name string, target object.Hash, tagger, message string, force bool) (object.Hash, error) {
	name = strings.TrimSpace(name)
	if err := validateTagName(name); err != nil {
		return "", fmt.Errorf("create annotated tag: %w", err)
	}
	message = strings.TrimSpace(message)
	if message == "" {
		return "", fmt.Errorf("create annotated tag: message is required")
	}
	tagger = strings.TrimSpace(tagger)
	if tagger == "" {
		tagger = "unknown"
	}

	targetType, err := r.Store.ReadType(target)
	if err != nil {
		return "", fmt.Errorf("create annotated tag: read target %s: %w", target, err)
	}
	if err := r.checkTagFree(name, force); err != nil {
		return "", fmt.Errorf("create annotated tag: %w", err)
	}

	now := time.Now()
	hdr := object.NewHeader()
	hdr.Add("object", string(target))
	hdr.Add("type", string(targetType))
	hdr.Add("tag", name)
	hdr.Add("tagger", fmt.Sprintf("%s %d %s", tagger, now.Unix(), formatTimezoneOffset(now)))
	hdr.Message = message + "\n"

	data, err := object.MarshalHeader(hdr)
	if err != nil {
		return "", fmt.Errorf("create annotated tag: %w", err)
	}
	tagHash, err := r.Store.Write(&object.Tag{Data: data})
	if err != nil {
		return "", fmt.Errorf("create annotated tag: write tag object: %w", err)
	}

	if err := r.UpdateRef("refs/tags/"+name, tagHash); err != nil {
		return "", fmt.Errorf("create annotated tag: %w", err)
	}
	return tagHash, nil
}

// DeleteTag removes a tag ref from refs/tags/. The tag object, if any, stays
// in the store.
func (r *Repo) DeleteTag(name string) error {
	name = strings.TrimSpace(name)
	if err := validateTagName(name); err != nil {
		return fmt.Errorf("delete tag: %w", err)
	}
	return r.DeleteRef("refs/tags/" + name)
}

// ListTags lists tag names sorted alphabetically.
func (r *Repo) ListTags() ([]string, error) {
	refs, err := r.ListRefs("tags")
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}

	names := make([]string, 0, len(refs))
	for _, ref := range refs {
		names = append(names, strings.TrimPrefix(ref.Name, "refs/tags/"))
	}
	return names, nil
}

func (r *Repo) checkTagFree(name string, force bool) error {
	if force {
		return nil
	}
	if _, err := r.ResolveRef("refs/tags/" + name); err == nil {
		return fmt.Errorf("%w: %q", ErrTagExists, name)
	}
	return nil
}

func validateTagName(name string) error {
	if name == "" {
		return fmt.Errorf("tag name is required")
	}
	if strings.HasPrefix(name, "/") || strings.HasSuffix(name, "/") ||
		strings.Contains(name, "..") || strings.ContainsAny(name, " \t\n\r\\") {
		return fmt.Errorf("invalid tag name %q", name)
	}
	return nil
}

func formatTimezoneOffset(t time.Time) string {
	_, offset := t.Zone()
	sign := "+"
	if offset < 0 {
		sign = "-"
		offset = -offset
	}
	return fmt.Sprintf("%s%02d%02d", sign, offset/3600, (offset%3600)/60)
}
