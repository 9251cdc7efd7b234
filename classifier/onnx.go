package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"sync"

	"github.com/nfnt/resize"
	ort "github.com/yalue/onnxruntime_go"
	_ "golang.org/x/image/webp"
)

// ONNXMetadata describes the exported model: tensor shapes, the class list
// and the square input size the image must be resized to.
type ONNXMetadata struct {
	InputShape  []int64  `json:"input_shape"`
	OutputShape []int64  `json:"output_shape"`
	Classes     []string `json:"classes"`
	ImageSize   int      `json:"image_size"`
}

// ONNXClassifier runs the food model locally through onnxruntime.
type ONNXClassifier struct {
	mu           sync.Mutex // session tensors are reused across calls
	session      *ort.AdvancedSession
	metadata     ONNXMetadata
	inputTensor  *ort.Tensor[float32]
	outputTensor *ort.Tensor[float32]
}

func NewONNXClassifier(modelPath, metadataPath string) (*ONNXClassifier, error) {
	if err := ort.InitializeEnvironment(); err != nil {
		return nil, fmt.Errorf("failed to initialize ONNX environment: %w", err)
	}

	metaFile, err := os.ReadFile(metadataPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read model metadata: %w", err)
	}
	var metadata ONNXMetadata
	if err := json.Unmarshal(metaFile, &metadata); err != nil {
		return nil, fmt.Errorf("failed to parse model metadata: %w", err)
	}
	if len(metadata.Classes) == 0 {
		return nil, fmt.Errorf("model metadata lists no classes")
	}

	inputTensor, err := ort.NewEmptyTensor[float32](ort.NewShape(metadata.InputShape...))
	if err != nil {
		return nil, fmt.Errorf("failed to create input tensor: %w", err)
	}
	outputTensor, err := ort.NewEmptyTensor[float32](ort.NewShape(metadata.OutputShape...))
	if err != nil {
		inputTensor.Destroy()
		return nil, fmt.Errorf("failed to create output tensor: %w", err)
	}

	session, err := ort.NewAdvancedSession(modelPath,
		[]string{"input"}, []string{"output"},
		[]ort.ArbitraryTensor{inputTensor}, []ort.ArbitraryTensor{outputTensor},
		nil)
	if err != nil {
		inputTensor.Destroy()
		outputTensor.Destroy()
		return nil, fmt.Errorf("failed to create ONNX session: %w", err)
	}

	return &ONNXClassifier{
		session:      session,
		metadata:     metadata,
		inputTensor:  inputTensor,
		outputTensor: outputTensor,
	}, nil
}

func (c *ONNXClassifier) Classify(_ context.Context, imageBytes []byte) ([]Candidate, error) {
	img, _, err := image.Decode(bytes.NewReader(imageBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	inputData := c.preprocess(img)

	c.mu.Lock()
	defer c.mu.Unlock()

	copy(c.inputTensor.GetData(), inputData)
	if err := c.session.Run(); err != nil {
		return nil, fmt.Errorf("inference failed: %w", err)
	}

	outputData := c.outputTensor.GetData()
	candidates := make([]Candidate, 0, len(c.metadata.Classes))
	for i, class := range c.metadata.Classes {
		if i >= len(outputData) {
			break
		}
		candidates = append(candidates, Candidate{
			Label:      class,
			Confidence: float64(outputData[i]),
		})
	}
	return candidates, nil
}

// preprocess resizes to the model's square input and lays pixels out as
// normalized CHW float32.
func (c *ONNXClassifier) preprocess(img image.Image) []float32 {
	size := uint(c.metadata.ImageSize)
	resized := resize.Resize(size, size, img, resize.Lanczos3)

	bounds := resized.Bounds()
	width, height := bounds.Max.X, bounds.Max.Y

	inputData := make([]float32, 3*width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, _ := resized.At(x, y).RGBA()

			idx := y*width + x
			inputData[idx] = float32(r) / 65535.0
			inputData[width*height+idx] = float32(g) / 65535.0
			inputData[2*width*height+idx] = float32(b) / 65535.0
		}
	}
	return inputData
}

func (c *ONNXClassifier) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.inputTensor != nil {
		c.inputTensor.Destroy()
	}
	if c.outputTensor != nil {
		c.outputTensor.Destroy()
	}
	if c.session != nil {
		c.session.Destroy()
	}
	ort.DestroyEnvironment()
}
