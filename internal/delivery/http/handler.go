package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ammotrack/backend/internal/domain"
	"github.com/ammotrack/backend/internal/infrastructure/cache"
	"github.com/ammotrack/backend/internal/usecase"
)

// Document context values accepted by the extract endpoint. Product pages
// use the wide default bands; search/category pages use the tighter listing
// bands to reject non-price numerals.
const (
	contextProduct = "product"
	contextListing = "listing"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	catalog          domain.CatalogStore
	deals            domain.DealStore
	extractor        *usecase.Extractor
	listingExtractor *usecase.Extractor
	dealExtractor    *usecase.DealExtractor
	prices           *cache.ProductCache
}

// NewHandler creates a new HTTP handler
func NewHandler(
	catalog domain.CatalogStore,
	deals domain.DealStore,
	extractor *usecase.Extractor,
	listingExtractor *usecase.Extractor,
	dealExtractor *usecase.DealExtractor,
	prices *cache.ProductCache,
) *Handler {
	return &Handler{
		catalog:          catalog,
		deals:            deals,
		extractor:        extractor,
		listingExtractor: listingExtractor,
		dealExtractor:    dealExtractor,
		prices:           prices,
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "ammotrack-backend",
		"version": "1.0.0",
	})
}

// extractRequest is the ingestion payload for one raw retailer document.
// Context selects the extraction bands: "product" (default) or "listing".
type extractRequest struct {
	RawText    string `json:"raw_text" binding:"required"`
	RetailerID uint   `json:"retailer_id" binding:"required"`
	OriginURL  string `json:"origin_url"`
	Context    string `json:"context"`
}

// ExtractListing runs the extraction pipeline over one raw document and
// upserts the result. A rejection is a 422 with the typed reason, not a
// server error: bad documents are normal.
func (h *Handler) ExtractListing(c *gin.Context) {
	var req extractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	extractor := h.extractor
	switch req.Context {
	case "", contextProduct:
	case contextListing:
		extractor = h.listingExtractor
	default:
		c.JSON(http.StatusBadRequest, gin.H{
			"error": `context must be "product" or "listing"`,
		})
		return
	}

	source := domain.SourceContext{
		RetailerID: req.RetailerID,
		OriginURL:  req.OriginURL,
		FetchedAt:  time.Now().UTC(),
	}

	record, err := extractor.Extract(req.RawText, source)
	if err != nil {
		var rejected *domain.RejectedRecordError
		if errors.As(err, &rejected) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"rejected": true,
				"reason":   rejected.Reason.Error(),
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "extraction failed"})
		return
	}

	if ok := h.catalog.Upsert(c.Request.Context(), record); !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to persist record"})
		return
	}

	c.JSON(http.StatusOK, record)
}

// inboundDealRequest is the ingestion payload for one retailer email.
type inboundDealRequest struct {
	MessageID  string    `json:"message_id" binding:"required"`
	Sender     string    `json:"sender" binding:"required"`
	Subject    string    `json:"subject"`
	HTMLBody   string    `json:"html_body"`
	TextBody   string    `json:"text_body"`
	ReceivedAt time.Time `json:"received_at"`
}

// IngestDeal extracts and stores a deal from one inbound email message.
func (h *Handler) IngestDeal(c *gin.Context) {
	var req inboundDealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	receivedAt := req.ReceivedAt
	if receivedAt.IsZero() {
		receivedAt = time.Now().UTC()
	}

	deal, err := h.dealExtractor.Extract(usecase.EmailMessage{
		MessageID:  req.MessageID,
		Sender:     req.Sender,
		Subject:    req.Subject,
		HTMLBody:   req.HTMLBody,
		TextBody:   req.TextBody,
		ReceivedAt: receivedAt,
	})
	if err != nil {
		var rejected *domain.RejectedRecordError
		if errors.As(err, &rejected) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"rejected": true,
				"reason":   rejected.Reason.Error(),
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "deal extraction failed"})
		return
	}

	if ok := h.deals.Save(c.Request.Context(), deal); !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to persist deal"})
		return
	}

	c.JSON(http.StatusOK, deal)
}

// BestPrices lists in-stock products ordered by price-per-round, optionally
// filtered by caliber. Results are cached briefly to absorb dashboard
// polling.
func (h *Handler) BestPrices(c *gin.Context) {
	caliber := c.Query("caliber")
	limit := parseLimit(c.Query("limit"), 50)

	key := cache.Key(caliber, limit)
	if products, ok := h.prices.Get(key); ok {
		c.JSON(http.StatusOK, gin.H{"products": products, "cached": true})
		return
	}

	products, err := h.catalog.BestPrices(c.Request.Context(), caliber, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to query products"})
		return
	}

	h.prices.Set(key, products)
	c.JSON(http.StatusOK, gin.H{"products": products, "cached": false})
}

// RecentDeals lists the latest stored email deals.
func (h *Handler) RecentDeals(c *gin.Context) {
	limit := parseLimit(c.Query("limit"), 20)

	deals, err := h.deals.RecentDeals(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to query deals"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deals": deals})
}

// RecentSessions lists the latest scraping session audit rows.
func (h *Handler) RecentSessions(c *gin.Context) {
	limit := parseLimit(c.Query("limit"), 20)

	sessions, err := h.catalog.RecentSessions(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to query sessions"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"sessions": sessions})
}

// sessionRequest reports the outcome of one finished batch run.
type sessionRequest struct {
	RetailerID      uint      `json:"retailer_id" binding:"required"`
	Status          string    `json:"status" binding:"required"`
	ProductsFound   int       `json:"products_found"`
	ProductsUpdated int       `json:"products_updated"`
	ProductsNew     int       `json:"products_new"`
	ErrorMessage    string    `json:"error_message"`
	StartedAt       time.Time `json:"started_at"`
}

// LogSession appends one scraping session audit row.
func (h *Handler) LogSession(c *gin.Context) {
	var req sessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.catalog.LogSession(c.Request.Context(), req.RetailerID, domain.SessionOutcome{
		Status:          req.Status,
		ProductsFound:   req.ProductsFound,
		ProductsUpdated: req.ProductsUpdated,
		ProductsNew:     req.ProductsNew,
		ErrorMessage:    req.ErrorMessage,
		StartedAt:       req.StartedAt,
	})

	c.JSON(http.StatusAccepted, gin.H{"logged": true})
}

func parseLimit(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 || limit > 500 {
		return fallback
	}
	return limit
}
