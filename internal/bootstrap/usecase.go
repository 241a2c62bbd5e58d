package bootstrap

import (
	tickDomain "github.com/muhammadchandra19/tickstore/internal/domain/tick"
	ingestUc "github.com/muhammadchandra19/tickstore/internal/usecase/ingest"
	queryUc "github.com/muhammadchandra19/tickstore/internal/usecase/query"
	"github.com/muhammadchandra19/tickstore/pkg/interval"
)

// Usecase holds the usecases of the store.
type Usecase struct {
	IngestUsecase tickDomain.IngestUsecase
	QueryUsecase  tickDomain.QueryUsecase
}

func (b *Bootstrap) registerIngestUsecase() {
	b.Usecase.IngestUsecase = ingestUc.NewUsecase(b.Infrastructure.Source, ingestUc.Target{
		BinaryPath: b.Config.Store.BinaryPath,
		IndexPath:  b.Config.Store.IndexPath,
		Codec:      b.Config.Store.Codec,
	}, b.Logger)
}

func (b *Bootstrap) registerQueryUsecase() error {
	session, err := interval.ParseSession(b.Config.Session.Open, b.Config.Session.Close)
	if err != nil {
		return err
	}
	b.Usecase.QueryUsecase = queryUc.NewUsecase(
		b.Infrastructure.Store,
		b.Infrastructure.Cache,
		session,
		Workers(b.Config.Store.Workers),
		b.Logger,
	)
	return nil
}
