package template

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"

	"personal-site/internal/handler/http/respond"
	"personal-site/internal/observability/metrics"
	templateUC "personal-site/internal/usecase/template"
)

const maxUploadMemory = 32 << 20

type UploadHandler struct{ Svc *templateUC.Service }

// ServeHTTP テンプレートアップロード
// @Summary      テンプレートアップロード
// @Description  multipart/form-data の file フィールドで1つ以上のファイルを受け付けます。
//
//	許可される拡張子は .pdf / .doc / .docx / .html / .htm です。
//	公開スラッグはファイル名から生成され、衝突時は -2, -3 と採番されます。
//
// @Tags         templates
// @Security     BearerAuth
// @Accept       multipart/form-data
// @Produce      json
// @Success      201 {object} DTO "登録されたテンプレート（複数時は added 配列）"
// @Failure      400 {string} string "Bad request - no valid files"
// @Failure      500 {string} string "Storage unavailable"
// @Router       /templates [post]
func (h UploadHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	files, err := readUploadFiles(r)
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	added, err := h.Svc.Dispatch(r.Context(), files)
	if err != nil {
		code := http.StatusInternalServerError
		if errors.Is(err, templateUC.ErrNoValidFiles) {
			code = http.StatusBadRequest
		}
		respond.SafeError(w, code, err)
		return
	}
	metrics.RecordAssetUpload("templates", len(added))

	if len(added) == 1 {
		respond.JSON(w, http.StatusCreated, toDTO(added[0]))
		return
	}
	respond.JSON(w, http.StatusCreated, map[string][]DTO{"added": toDTOs(added)})
}

func readUploadFiles(r *http.Request) ([]templateUC.FileInput, error) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		return nil, errors.New("multipart form expected")
	}
	headers := r.MultipartForm.File["file"]
	if len(headers) == 0 {
		return nil, errors.New("at least one file field is required")
	}

	files := make([]templateUC.FileInput, 0, len(headers))
	for _, hdr := range headers {
		data, err := readFilePart(hdr)
		if err != nil {
			return nil, err
		}
		files = append(files, templateUC.FileInput{
			Filename:    hdr.Filename,
			Data:        data,
			ContentType: hdr.Header.Get("Content-Type"),
		})
	}
	return files, nil
}

func readFilePart(hdr *multipart.FileHeader) ([]byte, error) {
	f, err := hdr.Open()
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	return io.ReadAll(f)
}
