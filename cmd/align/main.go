package main

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"gonum.org/v1/gonum/mat"

	"github.com/latent-labs/lsalign/internal/config"
	"github.com/latent-labs/lsalign/internal/draws"
	"github.com/latent-labs/lsalign/internal/procrustes"
	"github.com/latent-labs/lsalign/internal/summary"
	"github.com/latent-labs/lsalign/internal/utils/logger"
)

func main() {
	logger.Init()
	log.Info().Msg("Starting latent space alignment...")

	if err := godotenv.Load(); err != nil {
		log.Debug().Msg(".env not loaded; continuing with existing environment")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load environment configuration")
	}
	if cfg.NPersons <= 0 || cfg.NItems <= 0 {
		log.Fatal().Msg("N_PERSONS and N_ITEMS must be set to the entity counts of the fitted model")
	}

	table, err := draws.ReadCSV(cfg.DrawsPath)
	if err != nil {
		log.Fatal().Err(err).Msgf("failed to read draws from %s", cfg.DrawsPath)
	}
	log.Info().Msgf("Read %d draw(s) across %d parameter(s)", len(table.Rows), len(table.Columns))

	personCoords, err := draws.ExtractChainCoordinates(table, cfg.NPersons, cfg.LatentDims, cfg.PersonPrefix)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to extract person coordinates")
	}
	itemCoords, err := draws.ExtractChainCoordinates(table, cfg.NItems, cfg.LatentDims, cfg.ItemPrefix)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to extract item coordinates")
	}

	chainIDs, err := table.ChainIDs()
	if err != nil {
		log.Fatal().Err(err).Msg("draws table has no chain column")
	}

	refIdx := -1
	personSets := make([]*mat.Dense, len(chainIDs))
	itemSets := make([]*mat.Dense, len(chainIDs))
	for i, chainID := range chainIDs {
		personSets[i] = personCoords[chainID]
		itemSets[i] = itemCoords[chainID]
		if chainID == cfg.ReferenceChain {
			refIdx = i
		}
	}
	if refIdx < 0 {
		log.Fatal().Msgf("reference chain %d not present in draws (chains: %v)", cfg.ReferenceChain, chainIDs)
	}

	// Persons are the larger block, so they anchor the fit; the items
	// move under the same transformation to keep relative geometry.
	aligner := procrustes.NewAligner(
		procrustes.WithReferenceIndex(refIdx),
		procrustes.WithScaling(cfg.AllowScaling),
		procrustes.WithReflection(cfg.AllowReflection),
		procrustes.WithWorkers(cfg.Workers),
	)
	alignment, err := aligner.AlignDraws(personSets, itemSets)
	if err != nil {
		log.Fatal().Err(err).Msg("alignment batch failed")
	}

	alignedPersons := make(map[int]*mat.Dense, len(chainIDs))
	alignedItems := make(map[int]*mat.Dense, len(chainIDs))
	records := make([]draws.AuditRecord, len(chainIDs))
	var plotChains []int
	var plotDisparities []float64
	for i, chainID := range chainIDs {
		res := alignment.Results[i]
		alignedPersons[chainID] = alignment.Draws[i]
		alignedItems[chainID] = alignment.Coupled[i]
		records[i] = draws.NewAuditRecord(chainID, res)
		if i != refIdx {
			log.Info().Msgf("Aligning Chain %d to Chain %d. Disparity: %.4f", chainID, cfg.ReferenceChain, res.Disparity)
			plotChains = append(plotChains, chainID)
			plotDisparities = append(plotDisparities, res.Disparity)
		}
	}

	aligned, err := draws.ReplaceChainCoordinates(table, alignedPersons, cfg.PersonPrefix)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to replace person coordinates")
	}
	aligned, err = draws.ReplaceChainCoordinates(aligned, alignedItems, cfg.ItemPrefix)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to replace item coordinates")
	}

	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		log.Fatal().Err(err).Msgf("failed to create output dir %s", cfg.OutputDir)
	}
	alignedPath := filepath.Join(cfg.OutputDir, "draws_aligned.csv")
	if err := draws.WriteCSV(alignedPath, aligned); err != nil {
		log.Fatal().Err(err).Msgf("failed to write aligned draws to %s", alignedPath)
	}
	auditPath := filepath.Join(cfg.OutputDir, "alignment_audit.json")
	if err := draws.WriteAudit(auditPath, records); err != nil {
		log.Fatal().Err(err).Msgf("failed to write audit trail to %s", auditPath)
	}

	summary.PlotChainDisparityTerminal(plotChains, plotDisparities, "Per-chain alignment disparity")

	ok, degenerate, failed := alignment.Counts()
	logger.Sugar().Infow("Alignment run complete",
		"aligned", alignedPath,
		"audit", auditPath,
		"ok", ok,
		"degenerate", degenerate,
		"failed", failed,
	)
}
