package main

import (
	"fmt"

	"github.com/fwojciec/datpedia"
)

// PreviewCmd reports the references of each article without writing.
type PreviewCmd struct {
	Corpus string
	Slugs  []string // nil means every article in the source tree
}

// referenceCounts summarizes the references of one article.
type referenceCounts struct {
	images  int
	local   int
	missing []string
	links   map[datpedia.LinkKind]int
}

// Run executes the preview command.
func (c *PreviewCmd) Run(deps *Dependencies) error {
	slugs := c.Slugs
	if slugs == nil {
		var err error
		slugs, err = deps.Source.ListDocuments(deps.Ctx, c.Corpus)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", errorText(err))
			return err
		}
	}

	var missing int
	for _, slug := range slugs {
		if err := deps.Ctx.Err(); err != nil {
			return err
		}

		doc, err := deps.Source.ReadDocument(deps.Ctx, c.Corpus, slug)
		if datpedia.ErrorCode(err) == datpedia.EMISSINGSOURCE {
			fmt.Fprintln(deps.Stderr, datpedia.Diagnostic{
				Kind:   datpedia.DiagnosticMissingSource,
				Slug:   slug,
				Detail: datpedia.ErrorMessage(err),
			}.String())
			continue
		}
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", errorText(err))
			return err
		}

		counts, err := c.count(deps, doc)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error scanning %s: %s\n", slug, errorText(err))
			return err
		}
		missing += len(counts.missing)

		fmt.Fprintf(deps.Stdout, "%s: %d images (%d local, %d missing), %d article links, %d fragments, %d external, %d unrecognized\n",
			slug, counts.images, counts.local, len(counts.missing),
			counts.links[datpedia.LinkArticle], counts.links[datpedia.LinkFragment],
			counts.links[datpedia.LinkExternal], counts.links[datpedia.LinkUnrecognized])
		for _, p := range counts.missing {
			fmt.Fprintf(deps.Stdout, "  missing image: %s\n", p)
		}
	}

	if missing > 0 {
		return fmt.Errorf("%d missing images", missing)
	}
	return nil
}

func (c *PreviewCmd) count(deps *Dependencies, doc *datpedia.Document) (*referenceCounts, error) {
	refs, err := deps.Scanner.Scan(doc.Source)
	if err != nil {
		return nil, err
	}

	counts := &referenceCounts{
		images: len(refs.Images),
		links:  make(map[datpedia.LinkKind]int),
	}
	for _, ref := range refs.Images {
		p, ok, err := datpedia.ImagePath(ref)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		counts.local++
		exists, err := deps.Images.HasImage(deps.Ctx, c.Corpus, p)
		if err != nil {
			return nil, err
		}
		if !exists {
			counts.missing = append(counts.missing, p)
		}
	}
	for _, ref := range refs.Links {
		counts.links[datpedia.ClassifyLink(ref)]++
	}
	return counts, nil
}
