package main

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"gonum.org/v1/gonum/mat"

	"github.com/latent-labs/lsalign/internal/config"
	"github.com/latent-labs/lsalign/internal/draws"
	"github.com/latent-labs/lsalign/internal/summary"
	"github.com/latent-labs/lsalign/internal/utils/logger"
)

func main() {
	logger.Init()
	log.Info().Msg("Summarizing aligned draws...")

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

	table, err := draws.ReadCSV(cfg.AlignedPath)
	if err != nil {
		log.Fatal().Err(err).Msgf("failed to read aligned draws from %s", cfg.AlignedPath)
	}

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
		log.Fatal().Err(err).Msg("aligned table has no chain column")
	}

	personSets := make([]*mat.Dense, 0, len(chainIDs))
	itemSets := make([]*mat.Dense, 0, len(chainIDs))
	for _, chainID := range chainIDs {
		personSets = append(personSets, personCoords[chainID])
		itemSets = append(itemSets, itemCoords[chainID])
	}

	itemIntervals, err := summary.CoordinateIntervals(itemSets, cfg.CredibleLevel)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to summarize item coordinates")
	}

	fmt.Printf("\nItem latent positions (%d%% credible intervals across %d chains):\n",
		int(cfg.CredibleLevel*100), len(chainIDs))
	for i, interval := range itemIntervals {
		fmt.Printf("item %3d:", i+1)
		for d := 0; d < cfg.LatentDims; d++ {
			fmt.Printf("  dim%d %+.3f [%+.3f, %+.3f]", d+1, interval.Mean[d], interval.Lower[d], interval.Upper[d])
		}
		fmt.Println()
	}

	meanPersons := meanCoordinates(personSets)
	meanItems := meanCoordinates(itemSets)
	dist, err := summary.PersonItemDistances(meanPersons, meanItems)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to compute person-item distances")
	}
	np, ni := dist.Dims()
	var total float64
	for p := 0; p < np; p++ {
		for i := 0; i < ni; i++ {
			total += dist.At(p, i)
		}
	}
	log.Info().Msgf("Mean person-item latent distance: %.4f over %d pairs", total/float64(np*ni), np*ni)
}

func meanCoordinates(sets []*mat.Dense) *mat.Dense {
	n, dims := sets[0].Dims()
	out := mat.NewDense(n, dims, nil)
	for _, s := range sets {
		out.Add(out, s)
	}
	out.Scale(1/float64(len(sets)), out)
	return out
}
