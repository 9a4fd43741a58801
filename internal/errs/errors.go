package errs

import (
	stderrors "errors"
	"net/http"

	"github.com/pkg/errors"
)

var (
	ErrMissingInput        = errors.New("api key and transcript are both required")
	ErrUnsupportedFile     = errors.New("only plain text transcripts are supported")
	ErrInvalidEncoding     = errors.New("transcript is not valid UTF-8")
	ErrUnsupportedProvider = errors.New("unsupported provider")
	ErrTooManyRequests     = errors.New("too many evaluation requests")

	ErrAuthentication = errors.New("authentication with the provider failed")
	ErrRateLimited    = errors.New("provider rate limit reached")
	ErrTransport      = errors.New("provider could not be reached")
	ErrEmptyResponse  = errors.New("provider returned an empty response")
	ErrRemote         = errors.New("provider rejected the request")
)

type ErrorCode struct {
	Status int
	Msg    string
}

var codes = []struct {
	target error
	code   ErrorCode
}{
	{ErrMissingInput, ErrorCode{http.StatusBadRequest, "APIキーとファイルを入力してください"}},
	{ErrUnsupportedFile, ErrorCode{http.StatusBadRequest, "テキストファイル（.txt）のみ対応しています"}},
	{ErrInvalidEncoding, ErrorCode{http.StatusBadRequest, "ファイルはUTF-8のテキストである必要があります"}},
	{ErrUnsupportedProvider, ErrorCode{http.StatusBadRequest, "対応していないプロバイダです"}},
	{ErrTooManyRequests, ErrorCode{http.StatusTooManyRequests, "リクエストが多すぎます。しばらくしてから再度お試しください"}},
	{ErrAuthentication, ErrorCode{http.StatusUnauthorized, "APIキーが無効です"}},
	{ErrRateLimited, ErrorCode{http.StatusTooManyRequests, "APIの利用制限に達しました。しばらくしてから再度お試しください"}},
	{ErrEmptyResponse, ErrorCode{http.StatusBadGateway, "評価結果が空でした"}},
	{ErrTransport, ErrorCode{http.StatusBadGateway, "評価サービスに接続できませんでした"}},
	{ErrRemote, ErrorCode{http.StatusBadGateway, "評価サービスがエラーを返しました"}},
}

var SystemError = ErrorCode{Status: http.StatusInternalServerError, Msg: "システムエラーが発生しました"}

// CodeOf maps an error from the evaluation pipeline to a status and a
// user-facing message.
func CodeOf(err error) ErrorCode {
	for _, c := range codes {
		if stderrors.Is(err, c.target) {
			return c.code
		}
	}
	return SystemError
}

// Classify wraps cause with the sentinel matching an HTTP status returned by a provider.
func Classify(status int, cause error) error {
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return Wrap(ErrAuthentication, cause)
	case status == http.StatusTooManyRequests:
		return Wrap(ErrRateLimited, cause)
	case status == http.StatusRequestTimeout || status >= http.StatusInternalServerError:
		return Wrap(ErrTransport, cause)
	case status >= http.StatusBadRequest:
		return Wrap(ErrRemote, cause)
	}
	return Wrap(ErrTransport, cause)
}

// Wrap ties a provider error to one of the sentinels above so callers can
// test it with errors.Is while keeping the provider's message.
func Wrap(sentinel, cause error) error {
	if cause == nil {
		return sentinel
	}
	return &classified{sentinel: sentinel, cause: errors.WithStack(cause)}
}

type classified struct {
	sentinel error
	cause    error
}

func (e *classified) Error() string {
	return e.sentinel.Error() + ": " + e.cause.Error()
}

func (e *classified) Unwrap() []error {
	return []error{e.sentinel, e.cause}
}
