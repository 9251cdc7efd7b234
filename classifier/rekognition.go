package classifier

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	"github.com/aws/aws-sdk-go-v2/service/rekognition/types"
)

// RekognitionClassifier identifies food through AWS Rekognition DetectLabels.
type RekognitionClassifier struct {
	client        *rekognition.Client
	maxLabels     int32
	minConfidence float32 // percent, Rekognition scale
}

func NewRekognitionClassifier(ctx context.Context, region string) (*RekognitionClassifier, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, err
	}
	return &RekognitionClassifier{
		client:        rekognition.NewFromConfig(cfg),
		maxLabels:     5,
		minConfidence: 75,
	}, nil
}

func (r *RekognitionClassifier) Classify(ctx context.Context, imageBytes []byte) ([]Candidate, error) {
	out, err := r.client.DetectLabels(ctx, &rekognition.DetectLabelsInput{
		Image:         &types.Image{Bytes: imageBytes},
		MaxLabels:     aws.Int32(r.maxLabels),
		MinConfidence: aws.Float32(r.minConfidence),
	})
	if err != nil {
		return nil, fmt.Errorf("detect labels: %w", err)
	}

	return labelCandidates(out.Labels), nil
}

// labelCandidates maps DetectLabels output to candidates. Rekognition reports
// percent; rescale to probability here so the pipeline sees one confidence
// contract. Labels missing a name or confidence are skipped.
func labelCandidates(labels []types.Label) []Candidate {
	var candidates []Candidate
	for _, l := range labels {
		if l.Name == nil || l.Confidence == nil {
			continue
		}
		candidates = append(candidates, Candidate{
			Label:      *l.Name,
			Confidence: float64(*l.Confidence) / 100.0,
		})
	}
	return candidates
}
