package tools

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

const finlifePage1 = `{"result":{"err_cd":"000","err_msg":"정상","max_page_no":2,"now_page_no":1,
"baseList":[{"fin_prdt_cd":"A1","kor_co_nm":"우리은행","fin_prdt_nm":"WON플러스예금","etc_note":"","join_deny":"1","join_way":"인터넷","spcl_cnd":"없음"}],
"optionList":[{"fin_prdt_cd":"A1","intr_rate_type_nm":"단리","save_trm":"12","intr_rate":3.1,"intr_rate2":3.5},
{"fin_prdt_cd":"A1","intr_rate_type_nm":"단리","save_trm":"6","intr_rate":null,"intr_rate2":2.9}]}}`

const finlifePage2 = `{"result":{"err_cd":"000","max_page_no":"2","now_page_no":"2",
"baseList":[{"fin_prdt_cd":"B1","kor_co_nm":"국민은행","fin_prdt_nm":"KB Star","join_deny":3}],
"optionList":[{"fin_prdt_cd":"B1","intr_rate_type_nm":"복리","save_trm":24,"intr_rate":2.5,"intr_rate2":null}]}}`

func TestFinlifeFetchAllPages(t *testing.T) {
	var pages []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/depositProductsSearch.json" {
			t.Errorf("path = %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("auth") != "key" || q.Get("topFinGrpNo") != "020000" {
			t.Errorf("query = %v", q)
		}
		pages = append(pages, q.Get("pageNo"))
		if q.Get("pageNo") == "1" {
			w.Write([]byte(finlifePage1))
			return
		}
		w.Write([]byte(finlifePage2))
	}))
	defer srv.Close()

	client := NewFinlifeClient(srv.URL, "key", "020000")
	bases, options, err := client.FetchDepositProducts(context.Background())
	if err != nil {
		t.Fatalf("FetchDepositProducts: %v", err)
	}
	if len(pages) != 2 {
		t.Fatalf("pages = %v", pages)
	}
	if len(bases) != 2 || bases[0].FinPrdtCd != "A1" || bases[1].FinPrdtCd != "B1" {
		t.Fatalf("bases = %+v", bases)
	}
	if bases[0].JoinDeny != 1 || bases[1].JoinDeny != 3 {
		t.Errorf("join_deny = %d %d", bases[0].JoinDeny, bases[1].JoinDeny)
	}
	if len(options) != 3 {
		t.Fatalf("options = %+v", options)
	}
	if options[0].SaveTrm != 12 || *options[0].IntrRate != 3.1 {
		t.Errorf("option[0] = %+v", options[0])
	}
	if options[1].IntrRate != nil {
		t.Errorf("null intr_rate should stay nil")
	}
	if options[2].SaveTrm != 24 || options[2].IntrRate2 != nil {
		t.Errorf("option[2] = %+v", options[2])
	}
}

func TestFinlifeAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"result":{"err_cd":"010","err_msg":"미등록 인증키"}}`))
	}))
	defer srv.Close()

	_, _, err := NewFinlifeClient(srv.URL, "bad", "020000").FetchDepositProducts(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestFinlifeMissingKey(t *testing.T) {
	if _, _, err := NewFinlifeClient("http://127.0.0.1:1", "", "020000").FetchDepositProducts(context.Background()); err == nil {
		t.Fatal("expected error without key")
	}
}
