package scanner

import (
	"go.uber.org/fx"
)

// Module provides the extraction pipeline and follow-up advisor.
var Module = fx.Module("scanner",
	fx.Provide(
		NewExtractor,
		NewAdvisor,
		NewScanner,
	),
)
