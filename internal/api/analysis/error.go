package analysis

import (
	"StyleAdvisor/pkg/response"
	"net/http"
)

// NoFaceMessage is returned verbatim when the photo has no detectable face.
const NoFaceMessage = "No face detected."

var (
	ErrNoFaceDetected      = response.NewError(http.StatusOK, NoFaceMessage)
	ErrImageRequired       = response.NewError(http.StatusBadRequest, "image file is required")
	ErrInvalidImageFile    = response.NewError(http.StatusBadRequest, "uploaded file is not a valid image")
	ErrFileTooLarge        = response.NewError(http.StatusRequestEntityTooLarge, "image file is too large")
	ErrMalformedImage      = response.NewError(http.StatusBadRequest, "image could not be decoded")
	ErrImageTooLarge       = response.NewError(http.StatusRequestEntityTooLarge, "image dimensions are too large")
	ErrLandmarkService     = response.NewError(http.StatusBadGateway, "face analysis service unavailable")
	ErrInternalServerError = response.NewError(http.StatusInternalServerError, "internal server error")
)
