// Package placeholder generates the small blurred images shown while a
// lazy image loads.
//
// A Generator downscales a source image to a few pixels wide, blurs it and
// encodes it as a low-quality JPEG data URI together with the image's
// average colour. A Service reads sources from a directory, S3 or MinIO,
// remembers generated placeholders, and can be served over HTTP:
//
//	svc := placeholder.NewService(placeholder.NewDirSource("./public/photos"), nil)
//	r.Mount("/", placeholder.Handler(svc))
//
// The result feeds the image component directly:
//
//	p, err := svc.Get(ctx, "lake.jpg")
//	props := img.Props{PlaceholderSrc: p.DataURI, BackgroundColor: p.Color, ...}
package placeholder
