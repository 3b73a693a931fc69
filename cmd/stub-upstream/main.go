// Command stub-upstream is a local stand-in for the catalog/payments
// provider and the bot-verification provider, so the gateway can run
// end-to-end with zero credentials. All responses are hardcoded.
//
// Point the gateway at it with:
//
//	SQUARE_BASE_URL=http://localhost:9090 go run ./cmd/server
//
// and set recaptcha.base_url to http://localhost:9090 as well.
package main

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/derob357/sisters-promise/internal/square"
)

var catalogObjects = []square.CatalogObject{
	{
		Type: "ITEM",
		ID:   "STUB_CANDLE_001",
		ItemData: &square.ItemData{
			Name:          "Lavender Soy Candle",
			Description:   "Hand-poured 8oz soy candle with lavender essential oil.",
			CategoryID:    "STUB_CAT_CANDLES",
			EcomImageURIs: []string{"https://example.com/images/lavender-candle.jpg"},
			Variations: []square.CatalogObject{
				{
					Type: "ITEM_VARIATION",
					ID:   "STUB_CANDLE_001_REG",
					ItemVariationData: &square.ItemVariationData{
						Name:       "Regular",
						PriceMoney: &square.Money{Amount: 1299, Currency: "USD"},
					},
				},
			},
		},
	},
	{
		Type: "ITEM",
		ID:   "STUB_SOAP_002",
		ItemData: &square.ItemData{
			Name:        "Oatmeal Honey Soap",
			Description: "Gentle exfoliating bar soap, made in small batches.",
			CategoryID:  "STUB_CAT_SOAPS",
			Variations: []square.CatalogObject{
				{
					Type: "ITEM_VARIATION",
					ID:   "STUB_SOAP_002_BAR",
					ItemVariationData: &square.ItemVariationData{
						Name:       "Single Bar",
						PriceMoney: &square.Money{Amount: 799, Currency: "USD"},
					},
				},
			},
		},
	},
	// A non-ITEM object; the gateway must skip it in listings and treat a
	// direct fetch as not found.
	{Type: "CATEGORY", ID: "STUB_CAT_CANDLES"},
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func main() {
	log.Println("WARNING: stub-upstream serves HARDCODED catalog, payment and")
	log.Println("verification responses. Local development only.")

	port := os.Getenv("STUB_PORT")
	if port == "" {
		port = "9090"
	}

	mux := http.NewServeMux()

	mux.HandleFunc("GET /v2/catalog/list", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"objects": catalogObjects})
	})

	mux.HandleFunc("GET /v2/catalog/object/{id}", func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		for _, obj := range catalogObjects {
			if obj.ID == id {
				writeJSON(w, http.StatusOK, map[string]any{"object": obj})
				return
			}
		}
		writeJSON(w, http.StatusNotFound, map[string]any{
			"errors": []map[string]string{{
				"category": "INVALID_REQUEST_ERROR",
				"code":     "NOT_FOUND",
				"detail":   fmt.Sprintf("object %s not found", id),
			}},
		})
	})

	mux.HandleFunc("POST /v2/payments", func(w http.ResponseWriter, r *http.Request) {
		var req square.CreatePaymentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]any{
				"errors": []map[string]string{{
					"category": "INVALID_REQUEST_ERROR",
					"code":     "BAD_REQUEST",
				}},
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"payment": square.Payment{
				ID:          "stub_" + uuid.NewString(),
				Status:      "COMPLETED",
				AmountMoney: req.AmountMoney,
				CreatedAt:   time.Now().UTC().Format(time.RFC3339),
			},
		})
	})

	// Always-pass bot verification.
	mux.HandleFunc("POST /recaptcha/api/siteverify", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "score": 0.9})
	})

	addr := ":" + port
	log.Printf("stub-upstream listening on %s", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatalf("stub-upstream: %v", err)
	}
}
