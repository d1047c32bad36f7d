package checkpoint

import (
	"bytes"
	"encoding/gob"
	"io"

	"terrainforge/internal/raster"
)

func gobEncode(w io.Writer, arr raster.Array) error {
	return gob.NewEncoder(w).Encode(arr)
}

func gobDecode(data []byte) (raster.Array, error) {
	var arr raster.Array
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&arr); err != nil {
		return raster.Array{}, err
	}
	return arr, nil
}
