package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"file-share-api/internal/application/ports"
	"file-share-api/internal/domain/audit"
	"file-share-api/internal/infrastructure/mq"
)

const auditWriteTimeout = 5 * time.Second

type AuditService struct {
	auditRepository audit.Repository
	resolver        ports.AccessResolver
	publisher       ports.EventPublisher
	logger          *zap.Logger
	mCounter        *prometheus.CounterVec
	now             func() time.Time
}

func NewAuditService(
	auditRepository audit.Repository,
	resolver ports.AccessResolver,
	publisher ports.EventPublisher,
	logger *zap.Logger,
	mCounter *prometheus.CounterVec,
) ports.AuditLog {
	return &AuditService{
		auditRepository: auditRepository,
		resolver:        resolver,
		publisher:       publisher,
		logger:          logger,
		mCounter:        mCounter,
		now:             time.Now,
	}
}

func (as *AuditService) count(label string) {
	if as.mCounter != nil {
		as.mCounter.WithLabelValues(label).Inc()
	}
}

func (as *AuditService) Record(ctx context.Context, e audit.Entry) {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = as.now().UTC()
	}

	// the action already happened, a client hang-up must not lose its trail
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), auditWriteTimeout)
	defer cancel()

	out, err := as.auditRepository.AppendEntry(ctx, &e)
	if errors.Is(err, audit.ErrFileGone) {
		as.logger.Warn("audit entry skipped, file already deleted",
			zap.String("action", string(e.Action)),
			zap.Stringer("file_id", e.FileID),
			zap.Stringer("actor_id", e.ActorID),
		)
		as.count("audit_entries_skipped_total")
		return
	}
	if err != nil {
		as.logger.Error("audit append failed",
			zap.Error(err),
			zap.String("action", string(e.Action)),
			zap.Stringer("file_id", e.FileID),
			zap.Stringer("actor_id", e.ActorID),
		)
		as.count("audit_write_failed_total")
		return
	}

	as.count("audit_entries_total")

	if as.publisher == nil {
		return
	}
	ok := as.publisher.Enqueue(mq.Event{
		Id:       out.ID,
		TS:       out.CreatedAt,
		Action:   string(out.Action),
		FileID:   out.FileID.String(),
		ActorID:  out.ActorID.String(),
		Metadata: out.Metadata,
	})
	if !ok {
		as.logger.Warn("audit event dropped, publisher buffer full", zap.Stringer("entry_id", out.ID))
		as.count("audit_events_dropped_total")
	}
}

func (as *AuditService) FileHistory(
	ctx context.Context,
	fileID, requesterID uuid.UUID,
	page int,
) (audit.Entries, error) {
	if err := as.resolver.RequireOwner(ctx, fileID, requesterID); err != nil {
		return nil, err
	}

	es, err := as.auditRepository.FetchFileEntries(ctx, fileID, page)
	if err != nil {
		return nil, storageErr("fetch file entries", err)
	}

	return es, nil
}

func (as *AuditService) ActorHistory(ctx context.Context, actorID uuid.UUID, page int) (audit.Entries, error) {
	es, err := as.auditRepository.FetchActorEntries(ctx, actorID, page)
	if err != nil {
		return nil, storageErr("fetch actor entries", err)
	}

	return es, nil
}
