package httptransport

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"marketplace-ledger-service/internal/entity"
	"marketplace-ledger-service/internal/events"
	"marketplace-ledger-service/internal/service"
)

type Handler struct {
	svc *service.LedgerService
}

func NewHandler(svc *service.LedgerService) *Handler {
	return &Handler{svc: svc}
}

type createAccountDTO struct {
	Role    string `json:"role" example:"creator"`
	Address string `json:"address" example:"GCREATOR"`
}

type createJobDTO struct {
	ID      string        `json:"id" example:"J1"`
	Creator string        `json:"creator" example:"GCREATOR"`
	Maker   string        `json:"maker" example:"GMAKER"`
	Price   entity.Amount `json:"price" swaggertype:"string" example:"100"`
}

type mintNFTDTO struct {
	ID       string `json:"id" example:"N1"`
	Owner    string `json:"owner" example:"GALICE"`
	Metadata string `json:"metadata" example:"ipfs://meta"`
}

type listNFTDTO struct {
	Price entity.Amount `json:"price" swaggertype:"string" example:"50"`
}

type buyNFTDTO struct {
	Buyer string `json:"buyer" example:"GBOB"`
}

type releaseResp struct {
	JobID string `json:"job_id"`
	Event string `json:"event"`
}

type buyResp struct {
	NFTID string `json:"nft_id"`
	Owner string `json:"owner"`
	Event string `json:"event"`
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return false
	}
	return true
}

// CreateAccount godoc
// @Summary Create an account
// @Description Stores a role-tagged account. The caller must be the address unless self-signed accounts are disabled.
// @Tags accounts
// @Accept json
// @Produce json
// @Param X-Caller-Identity header string true "authenticated caller"
// @Param request body createAccountDTO true "account payload (role: creator|maker|shopper, any case)"
// @Success 201 {object} entity.Account
// @Failure 400 {object} apiError
// @Failure 403 {object} apiError
// @Failure 409 {object} apiError
// @Router /accounts [post]
func (h *Handler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	var dto createAccountDTO
	if !decode(w, r, &dto) {
		return
	}

	role, err := entity.ParseRole(dto.Role)
	if err != nil {
		writeErr(w, http.StatusBadRequest, err.Error())
		return
	}

	acc, err := h.svc.CreateAccount(r.Context(), CallerFrom(r.Context()), role, entity.Identity(dto.Address))
	if err != nil {
		writeLedgerErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, acc)
}

// GetAccount godoc
// @Summary Get account
// @Tags accounts
// @Produce json
// @Param address path string true "account address"
// @Success 200 {object} entity.Account
// @Failure 404 {object} apiError
// @Router /accounts/{address} [get]
func (h *Handler) GetAccount(w http.ResponseWriter, r *http.Request) {
	acc, err := h.svc.GetAccount(r.Context(), entity.Identity(chi.URLParam(r, "address")))
	if err != nil {
		writeLedgerErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, acc)
}

// CreateJob godoc
// @Summary Create a job
// @Description Opens an escrow record between creator and maker. Price is a signed 128-bit decimal string.
// @Tags jobs
// @Accept json
// @Produce json
// @Param request body createJobDTO true "job payload"
// @Success 201 {object} entity.Job
// @Failure 400 {object} apiError
// @Failure 409 {object} apiError
// @Router /jobs [post]
func (h *Handler) CreateJob(w http.ResponseWriter, r *http.Request) {
	var dto createJobDTO
	if !decode(w, r, &dto) {
		return
	}

	job, err := h.svc.CreateJob(r.Context(), service.CreateJobRequest{
		ID:      dto.ID,
		Creator: entity.Identity(dto.Creator),
		Maker:   entity.Identity(dto.Maker),
		Price:   dto.Price,
	})
	if err != nil {
		writeLedgerErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, job)
}

// GetJob godoc
// @Summary Get job
// @Tags jobs
// @Produce json
// @Param id path string true "job id"
// @Success 200 {object} entity.Job
// @Failure 400 {object} apiError
// @Failure 404 {object} apiError
// @Router /jobs/{id} [get]
func (h *Handler) GetJob(w http.ResponseWriter, r *http.Request) {
	job, err := h.svc.GetJob(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeLedgerErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, job)
}

// CompleteJob godoc
// @Summary Mark job completed
// @Tags jobs
// @Produce json
// @Param id path string true "job id"
// @Success 200 {object} entity.Job
// @Failure 404 {object} apiError
// @Router /jobs/{id}/complete [post]
func (h *Handler) CompleteJob(w http.ResponseWriter, r *http.Request) {
	job, err := h.svc.CompleteJob(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeLedgerErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, job)
}

// ReleasePayment godoc
// @Summary Release escrowed payment
// @Description Emits PaymentReleased for a completed job.
// @Tags jobs
// @Produce json
// @Param id path string true "job id"
// @Success 200 {object} releaseResp
// @Failure 404 {object} apiError
// @Failure 409 {object} apiError
// @Router /jobs/{id}/release [post]
func (h *Handler) ReleasePayment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.svc.ReleasePayment(r.Context(), id); err != nil {
		writeLedgerErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, releaseResp{JobID: id, Event: events.TypePaymentReleased})
}

// MintNFT godoc
// @Summary Mint an NFT
// @Tags nfts
// @Accept json
// @Produce json
// @Param request body mintNFTDTO true "nft payload"
// @Success 201 {object} entity.NFT
// @Failure 400 {object} apiError
// @Failure 409 {object} apiError
// @Router /nfts [post]
func (h *Handler) MintNFT(w http.ResponseWriter, r *http.Request) {
	var dto mintNFTDTO
	if !decode(w, r, &dto) {
		return
	}

	nft, err := h.svc.MintNFT(r.Context(), service.MintNFTRequest{
		ID:       dto.ID,
		Owner:    entity.Identity(dto.Owner),
		Metadata: dto.Metadata,
	})
	if err != nil {
		writeLedgerErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, nft)
}

// GetNFT godoc
// @Summary Get NFT
// @Tags nfts
// @Produce json
// @Param id path string true "nft id"
// @Success 200 {object} entity.NFT
// @Failure 404 {object} apiError
// @Router /nfts/{id} [get]
func (h *Handler) GetNFT(w http.ResponseWriter, r *http.Request) {
	nft, err := h.svc.GetNFT(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeLedgerErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, nft)
}

// ListNFT godoc
// @Summary List an NFT for sale
// @Description The caller must own the NFT. Re-listing an unsold NFT updates its price.
// @Tags nfts
// @Accept json
// @Produce json
// @Param X-Caller-Identity header string true "authenticated caller"
// @Param id path string true "nft id"
// @Param request body listNFTDTO true "listing payload"
// @Success 200 {object} entity.Listing
// @Failure 403 {object} apiError
// @Failure 404 {object} apiError
// @Failure 409 {object} apiError
// @Router /nfts/{id}/listing [post]
func (h *Handler) ListNFT(w http.ResponseWriter, r *http.Request) {
	var dto listNFTDTO
	if !decode(w, r, &dto) {
		return
	}

	listing, err := h.svc.ListNFT(r.Context(), CallerFrom(r.Context()), chi.URLParam(r, "id"), dto.Price)
	if err != nil {
		writeLedgerErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, listing)
}

// GetListing godoc
// @Summary Get listing
// @Tags nfts
// @Produce json
// @Param id path string true "nft id"
// @Success 200 {object} entity.Listing
// @Failure 404 {object} apiError
// @Router /nfts/{id}/listing [get]
func (h *Handler) GetListing(w http.ResponseWriter, r *http.Request) {
	listing, err := h.svc.GetListing(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeLedgerErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, listing)
}

// BuyNFT godoc
// @Summary Buy a listed NFT
// @Description Transfers ownership to the buyer and emits NFTSold.
// @Tags nfts
// @Accept json
// @Produce json
// @Param id path string true "nft id"
// @Param request body buyNFTDTO true "buyer"
// @Success 200 {object} buyResp
// @Failure 404 {object} apiError
// @Failure 409 {object} apiError
// @Router /nfts/{id}/buy [post]
func (h *Handler) BuyNFT(w http.ResponseWriter, r *http.Request) {
	var dto buyNFTDTO
	if !decode(w, r, &dto) {
		return
	}

	id := chi.URLParam(r, "id")
	buyer := strings.TrimSpace(dto.Buyer)
	if err := h.svc.BuyNFT(r.Context(), id, entity.Identity(buyer)); err != nil {
		writeLedgerErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, buyResp{NFTID: id, Owner: buyer, Event: events.TypeNFTSold})
}
