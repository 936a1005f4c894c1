package service

import (
	"converter"
	"converter/internal/api/models"
	"converter/internal/api/repo"
	"converter/internal/pygen"
	"converter/internal/realtime"
	"converter/internal/workflow"
	"converter/pkg"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

const scriptCachePrefix = "conversion:script:"

var ErrConversionNotFound = errors.New("conversion not found")
var ErrNodeNotFound = errors.New("node not found")

type ConversionService struct {
	conversionRepo *repo.ConversionRepository
	publisher      *realtime.Publisher
	config         converter.AppConfig
	logger         zerolog.Logger
}

func NewConversionService(publisher *realtime.Publisher) *ConversionService {
	return &ConversionService{
		conversionRepo: repo.NewConversionRepository(),
		publisher:      publisher,
		config:         converter.GetConfig(),
		logger:         converter.Logger,
	}
}

// Convert parses the workflow document, generates the script and stores the
// conversion. Scripts are cached in Redis keyed by document checksum, so
// resubmitting an identical document skips generation.
func (slf *ConversionService) Convert(name string, document []byte) (*models.Conversion, error) {
	wf, err := workflow.Parse(document)
	if err != nil {
		slf.logger.Error().Err(err).Str("name", name).Msg("Failed to parse workflow document")
		return nil, fmt.Errorf("parse workflow: %w", err)
	}

	sum := sha256.Sum256(document)
	checksum := hex.EncodeToString(sum[:])

	script, err := slf.scriptFor(checksum, wf)
	if err != nil {
		slf.logger.Error().Err(err).Str("name", name).Msg("Failed to generate script")
		return nil, fmt.Errorf("generate script: %w", err)
	}

	summary, err := json.Marshal(Analyze(wf))
	if err != nil {
		return nil, fmt.Errorf("marshal summary: %w", err)
	}

	conversion := &models.Conversion{
		PublicID:        uuid.NewString(),
		Name:            name,
		Checksum:        checksum,
		Document:        document,
		Script:          script,
		NodeCount:       len(wf.Nodes),
		ConnectionCount: len(wf.Connections),
		Version:         wf.Meta.Version,
		Author:          wf.Meta.Author,
		Description:     wf.Meta.Description,
		CycleWarning:    wf.HasCycle(),
		Summary:         summary,
	}
	if err := slf.conversionRepo.Create(conversion); err != nil {
		slf.logger.Error().Err(err).Str("name", name).Msg("Failed to store conversion")
		return nil, err
	}

	if conversion.CycleWarning {
		slf.logger.Warn().Str("publicId", conversion.PublicID).Msg("Workflow contains a cycle, execution order is partial")
	}

	slf.publisher.PublishConversionCompleted(realtime.ConversionCompleted{
		PublicID:     conversion.PublicID,
		Name:         conversion.Name,
		Checksum:     conversion.Checksum,
		NodeCount:    conversion.NodeCount,
		CycleWarning: conversion.CycleWarning,
	})

	return conversion, nil
}

// scriptFor returns the cached script for the checksum, generating and caching
// it on a miss. Cache failures degrade to plain generation.
func (slf *ConversionService) scriptFor(checksum string, wf *workflow.Workflow) (string, error) {
	key := scriptCachePrefix + checksum

	var cached string
	err := pkg.RedisGet(key, &cached)
	if err == nil {
		slf.logger.Debug().Str("checksum", checksum).Msg("Script cache hit")
		return cached, nil
	}
	if !pkg.IsRedisNil(err) {
		slf.logger.Warn().Err(err).Msg("Script cache read failed")
	}

	script, err := pygen.NewScriptBuilder(wf).Generate()
	if err != nil {
		return "", err
	}

	if err := pkg.RedisSet(key, script, slf.config.CacheTTL); err != nil {
		slf.logger.Warn().Err(err).Msg("Script cache write failed")
	}
	return script, nil
}

// FindAll retrieves all stored conversions
func (slf *ConversionService) FindAll() ([]models.Conversion, error) {
	conversions, err := slf.conversionRepo.FindAll()
	if err != nil {
		slf.logger.Error().Err(err).Msg("Error getting conversions")
		return nil, err
	}
	return conversions, nil
}

// FindByPublicID retrieves a conversion by its public UUID
func (slf *ConversionService) FindByPublicID(publicID string) (*models.Conversion, error) {
	conversion, err := slf.conversionRepo.FindByPublicID(publicID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrConversionNotFound
		}
		slf.logger.Error().Err(err).Str("publicId", publicID).Msg("Error getting conversion")
		return nil, err
	}
	return &conversion, nil
}

// Delete removes a conversion by its public UUID
func (slf *ConversionService) Delete(publicID string) error {
	if err := slf.conversionRepo.Delete(publicID); err != nil {
		slf.logger.Error().Err(err).Str("publicId", publicID).Msg("Error deleting conversion")
		return err
	}
	return nil
}

// ExecutionOrder re-derives the topological order from the stored document.
// On a cycle the order is partial and the second return value is true.
func (slf *ConversionService) ExecutionOrder(publicID string) ([]string, bool, error) {
	wf, err := slf.workflowFor(publicID)
	if err != nil {
		return nil, false, err
	}
	return wf.ExecutionOrder(), wf.HasCycle(), nil
}

// Upstream returns every node the given node transitively depends on,
// breadth-first from its direct sources.
func (slf *ConversionService) Upstream(publicID, nodeID string) ([]string, error) {
	return slf.lineage(publicID, nodeID, (*workflow.Workflow).SourceIDs)
}

// Downstream returns every node transitively fed by the given node.
func (slf *ConversionService) Downstream(publicID, nodeID string) ([]string, error) {
	return slf.lineage(publicID, nodeID, (*workflow.Workflow).DestinationIDs)
}

func (slf *ConversionService) lineage(publicID, nodeID string, next func(*workflow.Workflow, string) []string) ([]string, error) {
	wf, err := slf.workflowFor(publicID)
	if err != nil {
		return nil, err
	}
	if _, ok := wf.NodeByID(nodeID); !ok {
		return nil, ErrNodeNotFound
	}

	result := []string{}
	seen := map[string]bool{nodeID: true}
	queue := []string{nodeID}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, id := range next(wf, current) {
			if seen[id] {
				continue
			}
			seen[id] = true
			// Dangling connection endpoints are not part of the graph.
			if _, ok := wf.NodeByID(id); !ok {
				continue
			}
			result = append(result, id)
			queue = append(queue, id)
		}
	}
	return result, nil
}

func (slf *ConversionService) workflowFor(publicID string) (*workflow.Workflow, error) {
	conversion, err := slf.FindByPublicID(publicID)
	if err != nil {
		return nil, err
	}
	wf, err := workflow.Parse(conversion.Document)
	if err != nil {
		slf.logger.Error().Err(err).Str("publicId", publicID).Msg("Stored document no longer parses")
		return nil, fmt.Errorf("parse stored document: %w", err)
	}
	return wf, nil
}
