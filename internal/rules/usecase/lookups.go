package usecase

import (
	"context"

	"loyalty-rules/internal/rules/domain/model"
	"loyalty-rules/internal/rules/domain/repository"
)

// priorDocument returns the target's stored state, using the state supplied
// with the request when present and falling back to a point lookup. A
// missing document yields nil; a lookup failure propagates so the caller
// fails closed.
func priorDocument(ctx context.Context, req *repository.AccessRequest, reader repository.DocumentReader) (model.Document, error) {
	if req.Prior != nil {
		return req.Prior, nil
	}
	if req.DocumentID == "" {
		return nil, nil
	}
	return reader.Get(ctx, req.Collection, req.DocumentID)
}
