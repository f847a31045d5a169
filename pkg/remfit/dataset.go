package remfit

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"

	"golang.org/x/sync/errgroup"

	"git.sr.ht/~flobar/remfit/pkg/remfit/engine"
)

// uploadBatch is the number of rows sent per append call.
const uploadBatch = 256

// UploadCSV registers a new dataset with the engine and streams the
// rows of a csv file into it.  The header row becomes the column
// schema.  The reader and the sender run concurrently; the first
// error cancels both.
func UploadCSV(ctx context.Context, e engine.Engine, name string, in io.Reader) (engine.Dataset, error) {
	r := csv.NewReader(in)
	header, err := r.Read()
	if err != nil {
		return "", fmt.Errorf("upload %s: read header: %v", name, err)
	}
	data, err := e.CreateDataset(ctx, name, header)
	if err != nil {
		return "", fmt.Errorf("upload %s: %v", name, err)
	}
	g, gctx := errgroup.WithContext(ctx)
	batches := make(chan [][]string)
	g.Go(func() error {
		defer close(batches)
		batch := make([][]string, 0, uploadBatch)
		for {
			row, err := r.Read()
			if err == io.EOF {
				break
			}
			if err != nil {
				return fmt.Errorf("read %s: %v", name, err)
			}
			batch = append(batch, row)
			if len(batch) < uploadBatch {
				continue
			}
			if err := sendBatch(gctx, batches, batch); err != nil {
				return err
			}
			batch = make([][]string, 0, uploadBatch)
		}
		if len(batch) == 0 {
			return nil
		}
		return sendBatch(gctx, batches, batch)
	})
	g.Go(func() error {
		n := 0
		for batch := range batches {
			if err := e.AppendRows(gctx, data, batch); err != nil {
				return fmt.Errorf("append %s: %v", name, err)
			}
			n += len(batch)
			Log("upload %s: %d rows", name, n)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return "", fmt.Errorf("upload %s: %v", name, err)
	}
	return data, nil
}

func sendBatch(ctx context.Context, out chan<- [][]string, batch [][]string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("sendBatch: %v", err)
	}
	select {
	case out <- batch:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("sendBatch: %v", ctx.Err())
	}
}
