package controller

import (
	"house-auction-api/internal/entity"
	"house-auction-api/internal/service"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo"
)

type listingRoutesHandler struct {
	listingService service.Listing
	validate       *validator.Validate
}

func newListingRoutesHandler(outer *echo.Group, services *service.Services, v *validator.Validate) *listingRoutesHandler {
	h := &listingRoutesHandler{listingService: services.Listing, validate: v}

	outer.GET("/listings", h.GetListings)
	outer.POST("/listings/new", h.PostListing)
	outer.GET("/listings/:listingId", h.GetListing)
	outer.PATCH("/listings/:listingId/edit", h.EditListing)
	outer.DELETE("/listings/:listingId", h.DeleteListing)
	outer.PUT("/listings/:listingId/active", h.ToggleListingActive)
	outer.PUT("/listings/:listingId/start", h.StartAuction)
	outer.PUT("/listings/:listingId/end", h.EndAuction)

	return h
}

// /listings
func (h *listingRoutesHandler) GetListings(c echo.Context) error {
	seq, err := h.listingService.GetListings(c.Request().Context())
	if err != nil {
		return serviceErrorResponse(c, err)
	}

	listings := make([]entity.ListingOutputModel, 0)
	for listing := range seq {
		listings = append(listings, listing)
	}

	return c.JSON(http.StatusOK, listings)
}

type postListingInput struct {
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description" validate:"required,max=2000"`
	ImageRef    string `json:"imageRef"`
	StartPrice  int64  `json:"startPrice" validate:"gte=0"`
	Caller      string `json:"caller" validate:"required"`
}

// /listings/new
func (h *listingRoutesHandler) PostListing(c echo.Context) error {
	var input postListingInput
	if err := c.Bind(&input); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{"Input data is not formed correctly"})
	}

	if err := h.validate.Struct(input); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{getAllErrorMessages(err)})
	}

	model := &entity.CreateListingInput{
		Title: input.Title, Description: input.Description, ImageRef: input.ImageRef,
		StartPrice: input.StartPrice, Caller: input.Caller,
	}

	listing, err := h.listingService.CreateListing(c.Request().Context(), model)
	if err != nil {
		return serviceErrorResponse(c, err)
	}

	return c.JSON(http.StatusOK, listing)
}

// /listings/:listingId
func (h *listingRoutesHandler) GetListing(c echo.Context) error {
	listingId, err := parseListingId(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{"Listing id must be a positive integer"})
	}

	listing, err := h.listingService.GetListingById(c.Request().Context(), listingId)
	if err != nil {
		return serviceErrorResponse(c, err)
	}

	return c.JSON(http.StatusOK, listing)
}

type editListingInput struct {
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description" validate:"required,max=2000"`
	ImageRef    string `json:"imageRef"`
	StartPrice  int64  `json:"startPrice" validate:"gte=0"`
	Caller      string `json:"caller" validate:"required"`
}

// /listings/:listingId/edit
func (h *listingRoutesHandler) EditListing(c echo.Context) error {
	listingId, err := parseListingId(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{"Listing id must be a positive integer"})
	}

	var input editListingInput
	if err := c.Bind(&input); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{"Input data is not formed correctly"})
	}

	if err := h.validate.Struct(input); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{getAllErrorMessages(err)})
	}

	model := &entity.UpdateListingInput{
		Title: input.Title, Description: input.Description, ImageRef: input.ImageRef,
		StartPrice: input.StartPrice, Caller: input.Caller,
	}

	listing, err := h.listingService.UpdateListingById(c.Request().Context(), listingId, model)
	if err != nil {
		return serviceErrorResponse(c, err)
	}

	return c.JSON(http.StatusOK, listing)
}

// /listings/:listingId
func (h *listingRoutesHandler) DeleteListing(c echo.Context) error {
	listingId, err := parseListingId(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{"Listing id must be a positive integer"})
	}

	caller := c.QueryParam("caller")
	if err := h.listingService.DeleteListingById(c.Request().Context(), listingId, caller); err != nil {
		return serviceErrorResponse(c, err)
	}

	return c.NoContent(http.StatusOK)
}

// /listings/:listingId/active
func (h *listingRoutesHandler) ToggleListingActive(c echo.Context) error {
	listingId, err := parseListingId(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{"Listing id must be a positive integer"})
	}

	caller := c.QueryParam("caller")
	listing, err := h.listingService.ToggleListingActive(c.Request().Context(), listingId, caller)
	if err != nil {
		return serviceErrorResponse(c, err)
	}

	return c.JSON(http.StatusOK, listing)
}

// /listings/:listingId/start
func (h *listingRoutesHandler) StartAuction(c echo.Context) error {
	listingId, err := parseListingId(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{"Listing id must be a positive integer"})
	}

	caller := c.QueryParam("caller")
	listing, err := h.listingService.StartAuction(c.Request().Context(), listingId, caller)
	if err != nil {
		return serviceErrorResponse(c, err)
	}

	return c.JSON(http.StatusOK, listing)
}

// /listings/:listingId/end
func (h *listingRoutesHandler) EndAuction(c echo.Context) error {
	listingId, err := parseListingId(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{"Listing id must be a positive integer"})
	}

	caller := c.QueryParam("caller")
	listing, err := h.listingService.EndAuction(c.Request().Context(), listingId, caller)
	if err != nil {
		return serviceErrorResponse(c, err)
	}

	return c.JSON(http.StatusOK, listing)
}
