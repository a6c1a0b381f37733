package controller

import (
	"house-auction-api/internal/entity"
	"house-auction-api/internal/service"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo"
)

type bidRoutesHandler struct {
	bidService service.Bid
	validate   *validator.Validate
}

func newBidRoutesHandler(outer *echo.Group, services *service.Services, v *validator.Validate) *bidRoutesHandler {
	h := &bidRoutesHandler{bidService: services.Bid, validate: v}

	outer.POST("/listings/:listingId/bids/new", h.PostBid)
	outer.GET("/listings/:listingId/bids", h.GetBids)
	outer.GET("/listings/:listingId/leader", h.GetLeader)

	return h
}

type postBidInput struct {
	Bidder string `json:"bidder" validate:"required,max=200"`
	Amount int64  `json:"amount" validate:"gte=0"`
}

// /listings/:listingId/bids/new
func (h *bidRoutesHandler) PostBid(c echo.Context) error {
	listingId, err := parseListingId(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{"Listing id must be a positive integer"})
	}

	var input postBidInput
	if err := c.Bind(&input); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{"Input data is not formed correctly"})
	}

	if err := h.validate.Struct(input); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{getAllErrorMessages(err)})
	}

	model := &entity.PlaceBidInput{ListingId: listingId, Bidder: input.Bidder, Amount: input.Amount}

	bid, err := h.bidService.PlaceBid(c.Request().Context(), model)
	if err != nil {
		return serviceErrorResponse(c, err)
	}

	return c.JSON(http.StatusOK, bid)
}

// /listings/:listingId/bids
func (h *bidRoutesHandler) GetBids(c echo.Context) error {
	listingId, err := parseListingId(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{"Listing id must be a positive integer"})
	}

	seq, err := h.bidService.GetBidsForListing(c.Request().Context(), listingId)
	if err != nil {
		return serviceErrorResponse(c, err)
	}

	bids := make([]entity.BidOutputModel, 0)
	for bid := range seq {
		bids = append(bids, bid)
	}

	return c.JSON(http.StatusOK, bids)
}

// /listings/:listingId/leader
func (h *bidRoutesHandler) GetLeader(c echo.Context) error {
	listingId, err := parseListingId(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{"Listing id must be a positive integer"})
	}

	leader, err := h.bidService.GetCurrentLeader(c.Request().Context(), listingId)
	if err != nil {
		return serviceErrorResponse(c, err)
	}

	if leader == nil {
		// No bids yet.
		return c.NoContent(http.StatusNoContent)
	}

	return c.JSON(http.StatusOK, leader)
}
