package memory

import (
	"context"
	"errors"

	"mindcheck-service/internal/domain"
)

// ChainLoader tries each loader in order and moves on only when a loader does
// not know the questionnaire. Other errors stop the chain.
type ChainLoader struct {
	loaders []QuestionnaireLoader
}

func NewChainLoader(loaders ...QuestionnaireLoader) *ChainLoader {
	return &ChainLoader{loaders: loaders}
}

func (c *ChainLoader) LoadQuestionnaire(ctx context.Context, id string) (domain.Questionnaire, error) {
	for _, l := range c.loaders {
		q, err := l.LoadQuestionnaire(ctx, id)
		if errors.Is(err, domain.ErrQuizNotFound) {
			continue
		}
		return q, err
	}
	return domain.Questionnaire{}, domain.ErrQuizNotFound
}
