package workers

import (
	"context"
	"fmt"
	"log"
	"strings"

	"finlife/models"
	"finlife/tools"
)

// Taxa ausente na API é gravada como -1.
const missingRate = -1.0

// ProductWriter é o subconjunto do db.ProductStore usado na ingestão.
type ProductWriter interface {
	UpsertProduct(p *models.Product) (bool, error)
	UpsertOption(o *models.RateOption) (bool, error)
}

// DepositSource entrega as listas base/option da API do FSS.
type DepositSource interface {
	FetchDepositProducts(ctx context.Context) ([]tools.FinlifeBase, []tools.FinlifeOption, error)
}

type IngestResult struct {
	ProductsCreated int
	ProductsSkipped int
	OptionsCreated  int
	OptionsSkipped  int
	OrphanOptions   int
}

// IngestDepositProducts grava produtos novos (códigos existentes são mantidos
// como estão) e suas opções, sem duplicar (produto, prazo, tipo de taxa).
// onProgress, se não nil, é chamado uma vez por item processado.
func IngestDepositProducts(ctx context.Context, src DepositSource, store ProductWriter, onProgress func()) (IngestResult, error) {
	var res IngestResult

	bases, options, err := src.FetchDepositProducts(ctx)
	if err != nil {
		return res, fmt.Errorf("fetch deposit products: %w", err)
	}

	ids := make(map[string]int64, len(bases))
	for _, b := range bases {
		code := strings.TrimSpace(b.FinPrdtCd)
		if code == "" {
			continue
		}
		p := models.Product{
			Code:             code,
			Company:          b.KorCoNm,
			Name:             b.FinPrdtNm,
			EtcNote:          b.EtcNote,
			JoinDeny:         int(b.JoinDeny),
			JoinWay:          b.JoinWay,
			SpecialCondition: b.SpclCnd,
		}
		created, err := store.UpsertProduct(&p)
		if err != nil {
			return res, err
		}
		if created {
			res.ProductsCreated++
		} else {
			res.ProductsSkipped++
		}
		ids[code] = p.ID
		tick(onProgress)
	}

	for _, o := range options {
		code := strings.TrimSpace(o.FinPrdtCd)
		productID, ok := ids[code]
		if !ok {
			res.OrphanOptions++
			log.Printf("ingest: option for unknown product %s ignored", code)
			tick(onProgress)
			continue
		}
		opt := models.RateOption{
			ProductID:   productID,
			ProductCode: code,
			RateType:    o.IntrRateTypeNm,
			BaseRate:    rateOrMissing(o.IntrRate),
			BonusRate:   rateOrMissing(o.IntrRate2),
			TermMonths:  int(o.SaveTrm),
		}
		created, err := store.UpsertOption(&opt)
		if err != nil {
			return res, err
		}
		if created {
			res.OptionsCreated++
		} else {
			res.OptionsSkipped++
		}
		tick(onProgress)
	}

	log.Printf("ingest: products created=%d skipped=%d, options created=%d skipped=%d orphan=%d",
		res.ProductsCreated, res.ProductsSkipped, res.OptionsCreated, res.OptionsSkipped, res.OrphanOptions)
	return res, nil
}

func rateOrMissing(v *float64) *float64 {
	r := missingRate
	if v != nil {
		r = *v
	}
	return &r
}

// SpotPriceWriter é o subconjunto do db.SpotPriceStore usado na importação.
type SpotPriceWriter interface {
	Insert(sp *models.SpotPrice) (bool, error)
}

type ImportResult struct {
	Created  int
	Existing int
	Skipped  int
}

// ImportSpotPrices grava as linhas lidas da planilha para o item, pulando
// (item, data) já existentes.
func ImportSpotPrices(item string, rows []tools.SpotRow, skipped int, store SpotPriceWriter) (ImportResult, error) {
	res := ImportResult{Skipped: skipped}
	for _, r := range rows {
		created, err := store.Insert(&models.SpotPrice{ItemName: item, BaseDate: r.Date, Price: r.Price})
		if err != nil {
			return res, err
		}
		if created {
			res.Created++
		} else {
			res.Existing++
		}
	}
	log.Printf("spot prices: %s created=%d existing=%d skipped=%d", item, res.Created, res.Existing, res.Skipped)
	return res, nil
}

func tick(f func()) {
	if f != nil {
		f()
	}
}
