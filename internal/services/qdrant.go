package services

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/qdrant/go-client/qdrant"
	"go.uber.org/zap"
)

// ResumeIndex stores one embedding per resume for nearest-neighbour search.
type ResumeIndex interface {
	InitCollection(ctx context.Context) error
	UpsertResume(ctx context.Context, resumeID uuid.UUID, name string, skills []string, embedding []float32) error
	SearchSimilar(ctx context.Context, queryEmbedding []float32, limit int) ([]SearchResult, error)
	DeleteResume(ctx context.Context, resumeID uuid.UUID) error
}

type SearchResult struct {
	ResumeID string
	Name     string
	Skills   []string
	Score    float32
}

type qdrantService struct {
	client         *qdrant.Client
	collectionName string
	vectorSize     uint64
	log            *zap.Logger
}

// NewQdrantService connects to the gRPC endpoint behind urlStr. Without an
// explicit port the gRPC default 6334 is used.
func NewQdrantService(urlStr, apiKey, collectionName string, log *zap.Logger) (ResumeIndex, error) {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return nil, fmt.Errorf("invalid Qdrant URL: %w", err)
	}

	host := parsed.Hostname()
	useTLS := parsed.Scheme == "https"

	port := 6334
	if p := parsed.Port(); p != "" {
		if v, err := strconv.Atoi(p); err == nil {
			port = v
		}
	}

	client, err := qdrant.NewClient(&qdrant.Config{
		Host:   host,
		Port:   port,
		APIKey: apiKey,
		UseTLS: useTLS,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create qdrant client: %w", err)
	}

	return &qdrantService{
		client:         client,
		collectionName: collectionName,
		vectorSize:     768, // text-embedding-004
		log:            log,
	}, nil
}

func (q *qdrantService) InitCollection(ctx context.Context) error {
	exists, err := q.client.CollectionExists(ctx, q.collectionName)
	if err != nil {
		return fmt.Errorf("failed to check collection: %w", err)
	}

	if exists {
		q.log.Info("✅ Qdrant collection already exists", zap.String("collection", q.collectionName))
		return nil
	}

	err = q.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: q.collectionName,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     q.vectorSize,
			Distance: qdrant.Distance_Cosine,
		}),
	})
	if err != nil {
		return fmt.Errorf("failed to create collection: %w", err)
	}

	q.log.Info("✅ Qdrant collection created", zap.String("collection", q.collectionName))
	return nil
}

// UpsertResume keys the point by the resume id, so re-indexing a resume
// replaces its previous vector.
func (q *qdrantService) UpsertResume(ctx context.Context, resumeID uuid.UUID, name string, skills []string, embedding []float32) error {
	point := &qdrant.PointStruct{
		Id:      qdrant.NewID(resumeID.String()),
		Vectors: qdrant.NewVectors(embedding...),
		Payload: qdrant.NewValueMap(map[string]any{
			"resume_id": resumeID.String(),
			"name":      name,
			"skills":    strings.Join(skills, ","),
		}),
	}

	_, err := q.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: q.collectionName,
		Points:         []*qdrant.PointStruct{point},
	})
	if err != nil {
		return fmt.Errorf("failed to upsert point: %w", err)
	}

	return nil
}

func (q *qdrantService) SearchSimilar(ctx context.Context, queryEmbedding []float32, limit int) ([]SearchResult, error) {
	points, err := q.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: q.collectionName,
		Query:          qdrant.NewQuery(queryEmbedding...),
		Limit:          qdrant.PtrOf(uint64(limit)),
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search: %w", err)
	}

	results := make([]SearchResult, 0, len(points))
	for _, point := range points {
		payload := point.Payload
		result := SearchResult{
			ResumeID: payloadString(payload, "resume_id"),
			Name:     payloadString(payload, "name"),
			Score:    point.Score,
		}
		if skills := payloadString(payload, "skills"); skills != "" {
			result.Skills = strings.Split(skills, ",")
		}
		results = append(results, result)
	}

	return results, nil
}

func (q *qdrantService) DeleteResume(ctx context.Context, resumeID uuid.UUID) error {
	_, err := q.client.Delete(ctx, &qdrant.DeletePoints{
		CollectionName: q.collectionName,
		Points:         qdrant.NewPointsSelector(qdrant.NewID(resumeID.String())),
	})
	if err != nil {
		return fmt.Errorf("failed to delete resume vector: %w", err)
	}

	return nil
}

func payloadString(payload map[string]*qdrant.Value, key string) string {
	if v, ok := payload[key]; ok {
		if s, ok := v.GetKind().(*qdrant.Value_StringValue); ok {
			return s.StringValue
		}
	}
	return ""
}
