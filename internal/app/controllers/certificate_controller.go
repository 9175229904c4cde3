package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/arda/campushub/internal/app/models/dto"
	"github.com/arda/campushub/internal/app/services"
	"github.com/arda/campushub/internal/middleware"
)

// CertificateController handles certificate operations
type CertificateController struct {
	certificateService services.CertificateService
}

// NewCertificateController creates a new CertificateController
func NewCertificateController(certificateService services.CertificateService) *CertificateController {
	return &CertificateController{certificateService: certificateService}
}

// IssueCertificate handles issuing a certificate for one attendee
// @Summary Issue a certificate
// @Description Issues a certificate for an attendee who checked in. Restricted to the club's leads and admins.
// @Tags certificates
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Param request body dto.IssueCertificateRequest true "Attendee and certificate type"
// @Success 201 {object} dto.CertificateResponse "Certificate issued"
// @Failure 400 {object} dto.ErrorResponse "Attendee did not check in"
// @Failure 403 {object} dto.ErrorResponse "Permission denied"
// @Failure 409 {object} dto.ErrorResponse "Certificate already issued"
// @Router /events/{id}/certificates [post]
func (c *CertificateController) IssueCertificate(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}
	eventID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.IssueCertificateRequest
	if !bindJSON(ctx, &req) {
		return
	}

	certificate, err := c.certificateService.Issue(ctx.Request.Context(), eventID, req.UserID, req.CertificateType, principal)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, certificate)
}

// BulkIssueCertificates handles issuing certificates to every uncertified attendee
// @Summary Bulk issue certificates
// @Description Issues certificates to every attendee without one. Already certified attendees are skipped, not failed.
// @Tags certificates
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Param request body dto.BulkIssueRequest true "Certificate type"
// @Success 200 {object} dto.BulkIssueResponse "Generation report"
// @Failure 403 {object} dto.ErrorResponse "Permission denied"
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Router /events/{id}/certificates/bulk [post]
func (c *CertificateController) BulkIssueCertificates(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}
	eventID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.BulkIssueRequest
	if !bindJSON(ctx, &req) {
		return
	}

	result, err := c.certificateService.BulkIssue(ctx.Request.Context(), eventID, req.CertificateType, principal)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, result)
}

// VerifyCertificate handles the public lookup of a certificate
// @Summary Verify a certificate
// @Description Public endpoint resolving a verification code to the certificate's details
// @Tags certificates
// @Produce json
// @Param code path string true "Verification code"
// @Success 200 {object} dto.VerifyCertificateResponse "Certificate is valid"
// @Failure 404 {object} dto.ErrorResponse "Certificate not found"
// @Router /certificates/verify/{code} [get]
func (c *CertificateController) VerifyCertificate(ctx *gin.Context) {
	code := ctx.Param("code")
	if code == "" {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Verification code required")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	certificate, err := c.certificateService.Verify(ctx.Request.Context(), code)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, certificate)
}

// GetMyCertificates handles listing the caller's certificates
// @Summary List my certificates
// @Tags certificates
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.ListResponse{data=[]dto.CertificateResponse} "Certificates retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized: JWT token missing or invalid"
// @Router /users/me/certificates [get]
func (c *CertificateController) GetMyCertificates(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}

	certificates, err := c.certificateService.ListMine(ctx.Request.Context(), principal.ID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ListResponse{Data: certificates, Total: len(certificates)})
}
