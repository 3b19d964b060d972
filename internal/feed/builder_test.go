package feed

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bft-labs/dirfeed/internal/domain"
	"github.com/bft-labs/dirfeed/internal/ports"
)

type fakeFile struct {
	name    string
	created time.Time
	err     error
}

// fakeDirectory lists files in slice order, standing in for the raw OS order.
type fakeDirectory struct {
	files   []fakeFile
	listErr error
}

func (d *fakeDirectory) Path() string { return "fake" }

func (d *fakeDirectory) List(ctx context.Context) ([]ports.DirEntry, error) {
	if d.listErr != nil {
		return nil, d.listErr
	}
	out := make([]ports.DirEntry, 0, len(d.files))
	for _, f := range d.files {
		out = append(out, ports.DirEntry{Name: f.name})
	}
	return out, nil
}

func (d *fakeDirectory) Inspect(ctx context.Context, name string) (time.Time, error) {
	for _, f := range d.files {
		if f.name == name {
			return f.created, f.err
		}
	}
	return time.Time{}, errors.New("no such file")
}

var t0 = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func defaultOptions() Options {
	return Options{Title: "a default title", Domain: "example.com", Subtitle: "a default description"}
}

func titles(f domain.Feed) []string {
	out := make([]string, 0, len(f.Items))
	for _, e := range f.Items {
		out = append(out, e.Title)
	}
	return out
}

func TestBuild_EndToEndScenario(t *testing.T) {
	dir := &fakeDirectory{files: []fakeFile{
		{name: "a.mp3", created: t0},
		{name: "readme", created: t0.Add(time.Hour)},
		{name: "b.mp3", created: t0.Add(time.Minute)},
	}}

	f, stats, err := NewBuilder(dir, defaultOptions(), nil).Build(context.Background())
	require.NoError(t, err)

	require.Len(t, f.Items, 2)
	assert.Equal(t, []string{"b", "a"}, titles(f))
	assert.Equal(t, "example.com/b.mp3", f.Items[0].Link)
	assert.Equal(t, "example.com/a.mp3", f.Items[1].Link)
	assert.Equal(t, "File 2. a default description", f.Items[0].Description)
	assert.Equal(t, "File 0. a default description", f.Items[1].Description)

	assert.Equal(t, "a default title", f.Title)
	assert.Equal(t, "example.com", f.Link)
	assert.Equal(t, "a default description", f.Description)

	assert.Equal(t, 3, stats.Listed)
	assert.Equal(t, 2, stats.Included)
	assert.Equal(t, 1, stats.Skipped[domain.SkipNoExtension])
}

func TestBuild_SkipsInvalidEntries(t *testing.T) {
	dir := &fakeDirectory{files: []fakeFile{
		{name: "ep1.ogg", created: t0},
		{name: "no-ext", created: t0},
		{name: ".hidden", created: t0},
		{name: "trailing.", created: t0},
		{name: "season.d", err: fmt.Errorf("season.d: %w", domain.ErrNotRegular)},
		{name: "ep2.ogg", err: fmt.Errorf("ep2.ogg: %w", domain.ErrNoCreationTime)},
		{name: "ep3.ogg", err: errors.New("permission denied")},
		{name: "bad\xffname.ogg", created: t0},
		{name: "ep4.txt", created: t0.Add(time.Second)},
	}}

	f, stats, err := NewBuilder(dir, defaultOptions(), nil).Build(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"ep4", "ep1"}, titles(f))
	assert.Equal(t, 9, stats.Listed)
	assert.Equal(t, 2, stats.Included)
	assert.Equal(t, 7, stats.SkippedTotal())
	assert.Equal(t, map[domain.SkipReason]int{
		domain.SkipNoExtension:    3,
		domain.SkipNotRegular:     1,
		domain.SkipNoCreationTime: 1,
		domain.SkipUnreadable:     1,
		domain.SkipBadName:        1,
	}, stats.Skipped)
}

func TestBuild_StableOnEqualCreationTimes(t *testing.T) {
	dir := &fakeDirectory{files: []fakeFile{
		{name: "z.mp3", created: t0},
		{name: "old.mp3", created: t0.Add(-time.Hour)},
		{name: "m.mp3", created: t0},
		{name: "a.mp3", created: t0},
		{name: "new.mp3", created: t0.Add(time.Hour)},
	}}

	f, _, err := NewBuilder(dir, defaultOptions(), nil).Build(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"new", "z", "m", "a", "old"}, titles(f))
}

func TestBuild_IndicesFollowRawListing(t *testing.T) {
	dir := &fakeDirectory{files: []fakeFile{
		{name: "first.mp3", created: t0},
		{name: "second.mp3", created: t0.Add(2 * time.Hour)},
		{name: "third.mp3", created: t0.Add(time.Hour)},
	}}

	f, _, err := NewBuilder(dir, Options{Domain: "d", Subtitle: "s"}, nil).Build(context.Background())
	require.NoError(t, err)

	got := map[string]string{}
	for _, e := range f.Items {
		got[e.Title] = e.Description
	}
	assert.Equal(t, map[string]string{
		"first":  "File 0. s",
		"second": "File 1. s",
		"third":  "File 2. s",
	}, got)
	assert.Equal(t, []string{"second", "third", "first"}, titles(f))
}

func TestBuild_ListErrorIsFatal(t *testing.T) {
	dir := &fakeDirectory{listErr: errors.New("no such directory")}

	_, _, err := NewBuilder(dir, defaultOptions(), nil).Build(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no such directory")

	_, _, err = NewBuilder(dir, defaultOptions(), nil).BuildDocument(context.Background())
	require.Error(t, err)
}

func TestBuild_EmptyDirectory(t *testing.T) {
	doc, stats, err := NewBuilder(&fakeDirectory{}, defaultOptions(), nil).BuildDocument(context.Background())
	require.NoError(t, err)
	assert.Zero(t, stats.Listed)
	assert.Contains(t, string(doc), "<title>a default title</title>")
	assert.NotContains(t, string(doc), "<item>")
}

func TestBuildDocument_Idempotent(t *testing.T) {
	dir := &fakeDirectory{files: []fakeFile{
		{name: "a.mp3", created: t0},
		{name: "b.flac", created: t0.Add(time.Minute)},
		{name: "c.wav", created: t0},
	}}
	b := NewBuilder(dir, defaultOptions(), nil)

	first, _, err := b.BuildDocument(context.Background())
	require.NoError(t, err)
	second, _, err := b.BuildDocument(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestBuildDocument_RenderErrorIsFatal(t *testing.T) {
	dir := &fakeDirectory{files: []fakeFile{{name: "a.mp3", created: t0}}}
	opts := defaultOptions()
	opts.Title = "bell\x07"

	_, _, err := NewBuilder(dir, opts, nil).BuildDocument(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "render feed")
}
