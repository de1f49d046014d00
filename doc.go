// Package tirocinio degrades MNIST digit tables in a controlled way, to
// study how classifiers behave on damaged input.
//
// A table is a CSV file with one flattened image per row and one pixel
// intensity in [0, 1] per column (784 columns for MNIST). Three
// transformations are provided:
//
//   - masking: zero floor(p × P) randomly chosen pixels in every row
//   - noise injection: add N(0, σ²) to every pixel, then clip to [0, 1]
//   - noise "removal": subtract a fresh N(0, σ²) sample, then clip to [0, 1]
//
// Noise removal does not invert an earlier injection. The subtracted noise
// is independent of any noise added before, so it degrades the images
// further.
//
// # Command-line tools
//
//	go run ./cmd/mask --mask_percentage 0.3
//	go run ./cmd/addnoise --noise_level 0.2
//	go run ./cmd/removenoise --noise_level 0.2
//
// Each tool reads mnist_test/x_test.csv and writes next to it
// (xmasked_test.csv, xrumore_test.csv, xdegradato_test.csv). Use --seed
// for reproducible output and --preview to render the first image before
// and after the transformation.
//
// # Library usage
//
//	ds, err := dataset.Load("mnist_test/x_test.csv")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	masker := preprocessing.NewPixelMasker(0.3, preprocessing.WithRandomState(42))
//	masked, err := masker.FitTransform(ds.X)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	err = dataset.Save("xmasked_test.csv", dataset.New(masked))
//
// # Packages
//
//   - dataset: CSV loader and writer
//   - preprocessing: PixelMasker, NoiseInjector, NoiseRemover
//   - metrics: distortion measures (MSE, RMSE, MAE, PSNR, zero fraction)
//   - preview: before/after heat map rendering
//   - pipeline: load, transform, measure, save
//   - core/model: Transformer interface and base types
//   - pkg/errors: structured errors and warnings
//   - pkg/log: structured logging
package tirocinio
