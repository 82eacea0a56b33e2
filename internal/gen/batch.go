package gen

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"companion-generator/internal/schema"
)

// GenerateAll generates every declaration concurrently. Units are returned in
// input order. At most Config.Jobs declarations run at once (GOMAXPROCS when
// zero). Cancelling ctx stops scheduling and returns the context error.
func (g *Generator) GenerateAll(ctx context.Context, decls []*schema.Declaration) ([]*Unit, error) {
	units := make([]*Unit, len(decls))

	limit := g.config.Jobs
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(limit)

	for i, d := range decls {
		if egCtx.Err() != nil {
			break
		}

		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}

			units[i] = g.Generate(d)

			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	claimFilenames(units)

	return units, nil
}

// claimFilenames gives each output file to the first unit that maps to it.
// A later unit with the same file name loses its items and gets an error.
// Units sharing a declaration name are already reported as duplicates.
func claimFilenames(units []*Unit) {
	owners := make(map[string]string, len(units))

	for _, u := range units {
		name := u.Filename()

		owner, taken := owners[name]
		if !taken {
			owners[name] = u.Declaration
			continue
		}

		u.Items = nil

		if owner != u.Declaration {
			u.Diagnostics.AddError(CodeDuplicateFile,
				fmt.Sprintf("output file %s is already generated for %q", name, owner), u.Pos, "")
			u.Diagnostics.WithDeclaration(u.Declaration)
		}
	}
}
