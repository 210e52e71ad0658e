package enrich

import (
	"context"
	"strings"

	"go.uber.org/zap"
)

// ImageType tells studio shots apart from installation photos.
type ImageType string

const (
	ImageProduct ImageType = "product"
	ImageProject ImageType = "project"
)

const classificationPrompt = `Analyze this product photograph and classify it as one of two types:

1. PRODUCT IMAGE: White or neutral studio background with product isolated/centered
   - Clean, professional product photography
   - Minimal or no environment/context
   - Focus is entirely on the product itself

2. PROJECT IMAGE: Environment/lifestyle/contextual image
   - Product shown in a room or setting
   - Lifestyle photography with decor/furniture
   - Architectural or interior design context
   - Product in actual use/installation

Respond with EXACTLY ONE WORD:
- "product" if it's a studio product shot with white/neutral background
- "project" if it shows environment/context/lifestyle

Your answer:`

// ParseImageType reads a one-word answer. Anything other than "product"
// counts as a project image.
func ParseImageType(answer string) ImageType {
	a := strings.Trim(strings.ToLower(strings.TrimSpace(answer)), `."'`)
	if a == string(ImageProduct) {
		return ImageProduct
	}
	return ImageProject
}

// Classifier sorts product images with a vision model.
type Classifier struct {
	Completer *Completer
	Log       *zap.Logger
}

func NewClassifier(c *Completer, log *zap.Logger) *Classifier {
	if log == nil {
		log = zap.NewNop()
	}
	return &Classifier{Completer: c, Log: log}
}

// Classify returns the type of the image at url, ImageProject on error.
func (c *Classifier) Classify(ctx context.Context, url string) ImageType {
	out, err := c.Completer.CompleteImage(ctx, "image_type", classificationPrompt, url, 10)
	if err != nil {
		c.Log.Warn("image classification failed, assuming project image", zap.String("url", url), zap.Error(err))
		return ImageProject
	}
	t := ParseImageType(out)
	if t == ImageProject && !strings.EqualFold(strings.TrimSpace(out), string(ImageProject)) {
		c.Log.Warn("unexpected classification answer", zap.String("url", url), zap.String("answer", out))
	}
	return t
}

// Split partitions images into studio shots and project photos, keeping
// their order.
func (c *Classifier) Split(ctx context.Context, images []string) (product, project []string) {
	for _, url := range images {
		if c.Classify(ctx, url) == ImageProduct {
			product = append(product, url)
		} else {
			project = append(project, url)
		}
	}
	return product, project
}
