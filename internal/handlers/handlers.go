package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"
)

func SendJSON(w http.ResponseWriter, status int, v any) (int, error) {
	payload, err := json.Marshal(v)
	if err != nil {
		return 0, err
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return w.Write(payload)
}

func SendJSONOrLog(w http.ResponseWriter, logger *logrus.Logger, v any) {
	_, err := SendJSON(w, http.StatusOK, v)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		logger.WithFields(logrus.Fields{
			"response": v,
			"error":    err,
		}).Error("unable to send response")
	}
}

func SendErrorOrLog(
	w http.ResponseWriter,
	logger *logrus.Logger,
	status int,
	e error,
) {
	_, err := SendJSON(w, status, wrapError(e))
	if err != nil {
		logger.WithFields(logrus.Fields{
			"sent error": e,
			"error":      err,
		}).Error("failed to send error message")
	}
}

func internalError(w http.ResponseWriter, logger *logrus.Logger, msg string, err error) {
	w.WriteHeader(http.StatusInternalServerError)
	logger.WithError(err).Error(msg)
}

func wrapError(err error) map[string]string {
	return map[string]string{
		"error": err.Error(),
	}
}
