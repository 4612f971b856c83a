// Package readme regenerates the marker sections of the profile README and
// its companion files.
//
// A run resolves every requested section first, then applies every
// replacement in memory, and only writes files once all of that succeeded.
// A failure anywhere leaves every target untouched.
package readme

import (
	"context"
	"fmt"
	"os"
	"slices"

	"github.com/agentstation/readmesync/internal/render"
	"github.com/agentstation/readmesync/pkg/constants"
	"github.com/agentstation/readmesync/pkg/errors"
	"github.com/agentstation/readmesync/pkg/logging"
	"github.com/agentstation/readmesync/pkg/markers"
)

// Section names select which data is regenerated.
const (
	SectionBlog     = "blog"
	SectionContribs = "contribs"
	SectionReleases = "releases"
	SectionTILs     = "tils"
)

// Marker names used in the target documents.
const (
	MarkerBlog           = "blog"
	MarkerContribs       = "contribs"
	MarkerRecentReleases = "recent_releases"
	MarkerReleaseCount   = "release_count"
	MarkerTILs           = "tils"
)

// Sections returns every known section name.
func Sections() []string {
	return []string{SectionBlog, SectionContribs, SectionReleases, SectionTILs}
}

// Generator regenerates the configured targets.
type Generator struct {
	fetcher Fetcher
	cfg     config
}

// New creates a generator reading records from fetcher.
func New(fetcher Fetcher, opts ...Option) (*Generator, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}
	return &Generator{fetcher: fetcher, cfg: cfg}, nil
}

// FileResult describes one regenerated file.
type FileResult struct {
	Path    string   `json:"path" yaml:"path"`
	Markers []string `json:"markers,omitempty" yaml:"markers,omitempty"`
	Changed bool     `json:"changed" yaml:"changed"`
	Written bool     `json:"written" yaml:"written"`
	Content string   `json:"-" yaml:"-"`
}

// Result is the outcome of a run.
type Result struct {
	Files []FileResult `json:"files" yaml:"files"`
}

// target is a file and the edits it receives. A standalone target has no
// markers; its whole content is the single fragment.
type target struct {
	path       string
	standalone bool
	edits      []edit
}

// edit binds a marker to the fragment it receives.
type edit struct {
	marker string
	inline bool
	frag   fragment
}

// plan lists the targets touched by the enabled sections, in a fixed order.
func (g *Generator) plan() []target {
	var targets []target

	if g.cfg.readmePath != "" {
		readme := target{path: g.cfg.readmePath}
		if g.enabled(SectionBlog) {
			readme.edits = append(readme.edits, edit{marker: MarkerBlog, frag: fragmentBlog})
		}
		if g.enabled(SectionContribs) {
			readme.edits = append(readme.edits, edit{marker: MarkerContribs, frag: fragmentContribs})
		}
		if g.enabled(SectionReleases) {
			readme.edits = append(readme.edits, edit{marker: MarkerRecentReleases, frag: fragmentRecentReleases})
		}
		if g.enabled(SectionTILs) {
			readme.edits = append(readme.edits, edit{marker: MarkerTILs, frag: fragmentTILs})
		}
		if len(readme.edits) > 0 {
			targets = append(targets, readme)
		}
	}

	if g.cfg.releasesPath != "" && g.enabled(SectionReleases) {
		targets = append(targets, target{path: g.cfg.releasesPath, edits: []edit{
			{marker: MarkerRecentReleases, frag: fragmentReleaseList},
			{marker: MarkerReleaseCount, inline: true, frag: fragmentReleaseCount},
		}})
	}

	if g.cfg.contribsPath != "" && g.enabled(SectionContribs) {
		targets = append(targets, target{path: g.cfg.contribsPath, standalone: true, edits: []edit{
			{frag: fragmentContribs},
		}})
	}

	return targets
}

func (g *Generator) enabled(section string) bool {
	return slices.Contains(g.cfg.sections, section)
}

// Run regenerates every target. With dry run enabled the new contents are
// returned in the result and nothing is written.
func (g *Generator) Run(ctx context.Context) (*Result, error) {
	logger := logging.FromContext(ctx)
	targets := g.plan()
	if len(targets) == 0 {
		return nil, errors.NewConfigError("sections", "no targets selected", nil)
	}

	// Resolve every fragment before touching any file.
	r := &resolver{gen: g, memo: &memo{fetcher: g.fetcher}, done: make(map[fragment]string)}
	for _, t := range targets {
		for _, e := range t.edits {
			if _, err := r.resolve(ctx, e.frag); err != nil {
				return nil, err
			}
		}
	}

	// Apply every replacement in memory.
	result := &Result{}
	for _, t := range targets {
		fr, err := g.build(ctx, t, r)
		if err != nil {
			return nil, err
		}
		result.Files = append(result.Files, fr)
	}

	if g.cfg.dryRun {
		logger.Info().Int("files", len(result.Files)).Msg("Dry run, nothing written")
		return result, nil
	}

	files := make(map[string][]byte)
	var order []string
	for _, f := range result.Files {
		if !f.Changed {
			logging.FromContext(logging.WithTarget(ctx, f.Path)).Debug().Msg("Unchanged")
			continue
		}
		files[f.Path] = []byte(f.Content)
		order = append(order, f.Path)
	}
	if err := writeFiles(files, order, constants.FilePermissions); err != nil {
		return nil, err
	}

	for i := range result.Files {
		f := &result.Files[i]
		if !f.Changed {
			continue
		}
		f.Written = true
		logging.FromContext(logging.WithTarget(ctx, f.Path)).Info().
			Strs("markers", f.Markers).
			Msg("Wrote file")
	}

	return result, nil
}

func (g *Generator) build(ctx context.Context, t target, r *resolver) (FileResult, error) {
	fr := FileResult{Path: t.path}

	var original string
	data, err := os.ReadFile(t.path)
	switch {
	case err == nil:
		original = string(data)
	case os.IsNotExist(err) && t.standalone:
		// created on first run
	default:
		return fr, errors.WrapIO("read", t.path, err)
	}

	var content string
	if t.standalone {
		content = r.done[t.edits[0].frag]
	} else {
		edits := make([]markers.Edit, 0, len(t.edits))
		for _, e := range t.edits {
			edits = append(edits, markers.Edit{Marker: e.marker, Fragment: r.done[e.frag], Inline: e.inline})
			fr.Markers = append(fr.Markers, e.marker)
		}
		content, err = markers.Apply(original, edits...)
		if err != nil {
			return fr, fmt.Errorf("update %s: %w", t.path, err)
		}
	}

	fr.Content = content
	fr.Changed = content != original || (t.standalone && data == nil)

	logging.FromContext(logging.WithTarget(ctx, t.path)).Debug().
		Bool("changed", fr.Changed).
		Msg("Rendered file")
	return fr, nil
}

// fragment identifies one rendered piece of markdown.
type fragment int

const (
	fragmentBlog fragment = iota
	fragmentContribs
	fragmentRecentReleases
	fragmentReleaseList
	fragmentReleaseCount
	fragmentTILs
)

func (f fragment) String() string {
	switch f {
	case fragmentBlog:
		return "blog"
	case fragmentContribs:
		return "contribs"
	case fragmentRecentReleases:
		return "recent_releases"
	case fragmentReleaseList:
		return "release_list"
	case fragmentReleaseCount:
		return "release_count"
	case fragmentTILs:
		return "tils"
	default:
		return fmt.Sprintf("fragment(%d)", int(f))
	}
}

// resolver renders fragments once per run.
type resolver struct {
	gen  *Generator
	memo *memo
	done map[fragment]string
}

func (r *resolver) resolve(ctx context.Context, f fragment) (string, error) {
	if s, ok := r.done[f]; ok {
		return s, nil
	}

	s, err := r.render(ctx, f)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", f, err)
	}
	r.done[f] = s
	return s, nil
}

func (r *resolver) render(ctx context.Context, f fragment) (string, error) {
	cfg := r.gen.cfg

	switch f {
	case fragmentBlog:
		entries, err := r.memo.fetcher.Blog(ctx, cfg.blogLimit)
		if err != nil {
			return "", err
		}
		if cfg.blogLimit > 0 && len(entries) > cfg.blogLimit {
			entries = entries[:cfg.blogLimit]
		}
		return render.Blog(entries), nil

	case fragmentContribs:
		contribs, err := r.memo.contributions(ctx)
		if err != nil {
			return "", err
		}
		return render.Contributions(contribs)

	case fragmentRecentReleases:
		releases, err := r.memo.releases(ctx)
		if err != nil {
			return "", err
		}
		return render.RecentReleases(releases, cfg.releaseLimit), nil

	case fragmentReleaseList:
		releases, err := r.memo.releases(ctx)
		if err != nil {
			return "", err
		}
		return render.ReleaseList(releases), nil

	case fragmentReleaseCount:
		releases, err := r.memo.releases(ctx)
		if err != nil {
			return "", err
		}
		return render.ReleaseCount(releases), nil

	case fragmentTILs:
		entries, err := r.memo.fetcher.TILs(ctx, cfg.tilLimit)
		if err != nil {
			return "", err
		}
		return render.TILs(entries), nil
	}

	return "", errors.NewValidationError("fragment", f.String(), "unknown fragment")
}
