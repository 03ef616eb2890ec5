package tools

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// FinlifeClient busca produtos de depósito na API aberta do FSS (finlife).
type FinlifeClient struct {
	BaseURL     string
	APIKey      string
	TopFinGrpNo string
	Client      *http.Client
}

func NewFinlifeClient(baseURL, apiKey, topFinGrpNo string) *FinlifeClient {
	return &FinlifeClient{
		BaseURL:     strings.TrimRight(baseURL, "/"),
		APIKey:      strings.TrimSpace(apiKey),
		TopFinGrpNo: topFinGrpNo,
		Client:      &http.Client{Timeout: 30 * time.Second},
	}
}

// FinlifeBase é um item de baseList.
type FinlifeBase struct {
	FinPrdtCd string  `json:"fin_prdt_cd"`
	KorCoNm   string  `json:"kor_co_nm"`
	FinPrdtNm string  `json:"fin_prdt_nm"`
	EtcNote   string  `json:"etc_note"`
	JoinDeny  flexInt `json:"join_deny"`
	JoinWay   string  `json:"join_way"`
	SpclCnd   string  `json:"spcl_cnd"`
}

// FinlifeOption é um item de optionList. Taxas podem vir null.
type FinlifeOption struct {
	FinPrdtCd      string   `json:"fin_prdt_cd"`
	IntrRateTypeNm string   `json:"intr_rate_type_nm"`
	IntrRate       *float64 `json:"intr_rate"`
	IntrRate2      *float64 `json:"intr_rate2"`
	SaveTrm        flexInt  `json:"save_trm"`
}

type finlifeResponse struct {
	Result struct {
		ErrCd      string          `json:"err_cd"`
		ErrMsg     string          `json:"err_msg"`
		MaxPageNo  flexInt         `json:"max_page_no"`
		NowPageNo  flexInt         `json:"now_page_no"`
		BaseList   []FinlifeBase   `json:"baseList"`
		OptionList []FinlifeOption `json:"optionList"`
	} `json:"result"`
}

// FetchDepositProducts percorre todas as páginas de depositProductsSearch.
func (f *FinlifeClient) FetchDepositProducts(ctx context.Context) ([]FinlifeBase, []FinlifeOption, error) {
	if f.APIKey == "" {
		return nil, nil, fmt.Errorf("FINLIFE_API_KEY not set")
	}

	var (
		bases   []FinlifeBase
		options []FinlifeOption
	)
	for page := 1; ; page++ {
		res, err := f.fetchPage(ctx, page)
		if err != nil {
			return nil, nil, fmt.Errorf("page %d: %w", page, err)
		}
		bases = append(bases, res.Result.BaseList...)
		options = append(options, res.Result.OptionList...)

		if int(res.Result.MaxPageNo) <= page {
			break
		}
	}
	return bases, options, nil
}

func (f *FinlifeClient) fetchPage(ctx context.Context, page int) (*finlifeResponse, error) {
	q := url.Values{}
	q.Set("auth", f.APIKey)
	q.Set("topFinGrpNo", f.TopFinGrpNo)
	q.Set("pageNo", strconv.Itoa(page))
	u := f.BaseURL + "/depositProductsSearch.json?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("finlife error %d: %s", resp.StatusCode, string(body))
	}

	var parsed finlifeResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("decode finlife response: %w", err)
	}
	if parsed.Result.ErrCd != "" && parsed.Result.ErrCd != "000" {
		return nil, fmt.Errorf("finlife error %s: %s", parsed.Result.ErrCd, parsed.Result.ErrMsg)
	}
	return &parsed, nil
}

// flexInt aceita 12 ou "12"; a API mistura os dois.
type flexInt int

func (n *flexInt) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		*n = 0
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			*n = 0
			return nil
		}
		v, err := strconv.Atoi(s)
		if err != nil {
			return err
		}
		*n = flexInt(v)
		return nil
	}
	var v int
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*n = flexInt(v)
	return nil
}
