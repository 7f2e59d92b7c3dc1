package scenario

import (
	"context"
	"fmt"
	"strings"

	"github.com/couchcryptid/hazard-risk-engine/internal/domain"
)

// Classifier resolves a scene signal to a scenario profile. A nil profile
// with a nil error means no recognizable hazard pattern was found.
type Classifier interface {
	Classify(ctx context.Context, sig domain.Signal) (*domain.ScenarioProfile, error)
}

type keywordRule struct {
	keywords []string
	profile  string
}

// keywordRules are evaluated top to bottom and the first hit wins, so
// "structure_fire_and_crack.jpg" resolves to fire rather than crack.
var keywordRules = []keywordRule{
	{keywords: []string{"fire"}, profile: KeyFire},
	{keywords: []string{"crack"}, profile: KeyCrack},
	{keywords: []string{"collapse", "earthquake"}, profile: KeyEarthquake},
	{keywords: []string{"flood"}, profile: KeyFlood},
	{keywords: []string{"rescue", "volunteer"}, profile: KeyRescue},
	{keywords: []string{"disaster"}, profile: KeyFire},
}

// KeywordClassifier matches ordered substrings in the signal label. It stands
// in for an image model and ignores Signal.Image.
type KeywordClassifier struct {
	registry *Registry
}

func NewKeywordClassifier(registry *Registry) *KeywordClassifier {
	return &KeywordClassifier{registry: registry}
}

func (c *KeywordClassifier) Classify(ctx context.Context, sig domain.Signal) (*domain.ScenarioProfile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	key, ok := MatchKeyword(sig.Label)
	if !ok {
		return nil, nil
	}
	p, ok := c.registry.Lookup(key)
	if !ok {
		return nil, fmt.Errorf("classify %q: profile %s not registered", sig.Label, key)
	}
	return &p, nil
}

// MatchKeyword returns the profile key the first matching rule selects.
func MatchKeyword(label string) (string, bool) {
	lower := strings.ToLower(label)
	for _, rule := range keywordRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.profile, true
			}
		}
	}
	return "", false
}
