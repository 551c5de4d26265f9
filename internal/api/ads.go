package api

import (
	"errors"   // Sentinel errors
	"io"       // Reading the uploaded payload
	"net/http" // HTTP status codes

	"geo_ads/internal/metrics" // Query outcome counters
	"geo_ads/internal/service" // Store operations

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// DistanceThreshold is the radius in meters within which an ad is visible
const DistanceThreshold = 50.0

// maxAdData caps the optional binary payload of an ad
const maxAdData = 1 << 20

var errAdDataTooLarge = errors.New("ad data too large")

// AdForm is the /new_ad form
type AdForm struct {
	Name       string `form:"ad_name"`     // Campaign name
	ClientName string `form:"client_name"` // Owning client, by name
	Category   string `form:"ad_category"` // Ad category
	Type       string `form:"ad_type"`     // Ad type
	Latitude   string `form:"latitude"`    // Decimal degrees
	Longitude  string `form:"longitude"`   // Decimal degrees
	Height     string `form:"ad_height"`   // Height above ground
}

// GetAdsLocationHandler returns the coordinates of the ads near the caller
func GetAdsLocationHandler(svc *service.Service, m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		location, err := requestLocation(c) // Form values first, JSON body second
		if err != nil {
			m.ObserveQuery(metrics.ResultInvalidCoordinates, 0)
			c.JSON(http.StatusOK, gin.H{"error": "Invalid coordinates"})
			return
		}
		ads, err := svc.FindNearbyAds(c.Request.Context(), location, DistanceThreshold)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"latitude":  location.Lat, // Query latitude
				"longitude": location.Lon, // Query longitude
				"error":     err.Error(),  // Error message
			}).Error("Nearby ads query failed")
			m.ObserveQuery(metrics.ResultError, 0)
			c.JSON(http.StatusOK, gin.H{"error": "An error happened"})
			return
		}
		m.ObserveQuery(metrics.ResultOK, len(ads))
		c.JSON(http.StatusOK, gin.H{"ads": ads})
	}
}

// NewAdFormHandler returns the context of the new ad form
func NewAdFormHandler(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		renderAdForm(c, svc, http.StatusOK, "")
	}
}

// CreateAdHandler stores a new ad and redirects to the landing page
func CreateAdHandler(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req AdForm
		if msg := bindForm(c, &req, nil); msg != "" {
			renderAdForm(c, svc, http.StatusBadRequest, msg)
			return
		}
		lat, latErr := ParseCoordinate(req.Latitude)
		lon, lonErr := ParseCoordinate(req.Longitude)
		var height float64 // Defaults to ground level
		var heightErr error
		if req.Height != "" {
			height, heightErr = ParseCoordinate(req.Height)
		}
		if latErr != nil || lonErr != nil || heightErr != nil {
			renderAdForm(c, svc, http.StatusBadRequest, "Invalid coordinates")
			return
		}
		data, err := adData(c)
		if err != nil {
			renderAdForm(c, svc, http.StatusBadRequest, "Invalid ad data")
			return
		}

		_, err = svc.CreateAd(c.Request.Context(), service.NewAd{
			Name:       req.Name,
			ClientName: req.ClientName,
			Latitude:   lat,
			Longitude:  lon,
			Height:     height,
			Category:   req.Category,
			Type:       req.Type,
			Data:       data,
		})
		if err != nil {
			status := errorStatus(err)
			msg := "An error happened"
			if status == http.StatusNotFound {
				msg = "Client not found"
			}
			logrus.WithFields(logrus.Fields{
				"client_name": req.ClientName, // Referenced client
				"error":       err.Error(),    // Error message
			}).Warn("Ad creation failed")
			renderAdForm(c, svc, status, msg)
			return
		}
		c.Redirect(http.StatusFound, "/")
	}
}

// ListAdsHandler returns every ad
func ListAdsHandler(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		ads, err := svc.ListAds(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch ads"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"ads": ads})
	}
}

// renderAdForm answers with the ad form context and the client list
func renderAdForm(c *gin.Context, svc *service.Service, status int, msg string) {
	form, err := adFormContext(c, svc)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch clients"})
		return
	}
	renderForm(c, status, form, msg)
}

func adFormContext(c *gin.Context, svc *service.Service) (gin.H, error) {
	clients, err := svc.ListClients(c.Request.Context())
	if err != nil {
		return nil, err
	}
	return gin.H{"clients": clients}, nil
}

// adData reads the optional ad_data file of a multipart form
func adData(c *gin.Context) ([]byte, error) {
	fh, err := c.FormFile("ad_data")
	if err != nil {
		return nil, nil // No upload
	}
	if fh.Size > maxAdData {
		return nil, errAdDataTooLarge
	}
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(io.LimitReader(f, maxAdData))
}
