package mwdump

import (
	"cmp"
	"fmt"

	"github.com/jacoelho/mwdump/pkg/xmltext"
)

const (
	defaultMaxTokenSize = 16 << 20
	defaultScratchSize  = 3 << 20
)

type parseLimits struct {
	maxTokenSize int
	scratchSize  int
}

func resolveParseLimits(maxTokenSize, scratchSize int) (parseLimits, error) {
	if maxTokenSize < 0 {
		return parseLimits{}, fmt.Errorf("xml max token size must be >= 0")
	}
	if scratchSize < 0 {
		return parseLimits{}, fmt.Errorf("scratch size must be >= 0")
	}
	return parseLimits{
		maxTokenSize: defaultLimit(maxTokenSize, defaultMaxTokenSize),
		scratchSize:  defaultLimit(scratchSize, defaultScratchSize),
	}, nil
}

func (l parseLimits) options() []xmltext.Options {
	return []xmltext.Options{
		xmltext.MaxTokenSize(defaultLimit(l.maxTokenSize, defaultMaxTokenSize)),
	}
}

func defaultLimit(value, fallback int) int {
	return cmp.Or(value, fallback)
}
