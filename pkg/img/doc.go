// Package img provides a lazy-loading image component with a blurred
// placeholder and a broken-image fallback.
//
// A Service is created per client session. It owns the session's feature
// flags, the visibility observer and the cache of sources that have already
// loaded, so instances created later in the session can skip the long
// fade-in.
//
//	svc := img.NewService(nil, img.WithLogger(logger))
//	photo, err := svc.NewImage(img.Props{
//	    Variant:        img.SimpleImage{Src: "/photos/lake.jpg"},
//	    Alt:            "A lake at dawn",
//	    PlaceholderSrc: placeholder.DataURI,
//	    Width:          640,
//	    Height:         480,
//	})
//
// # Lifecycle
//
// NewImage returns an instance in its provisional state. That state only
// depends on whether the image is critical (Loading: LoadingEager) and
// whether its source is already in the load cache, so the server render and
// the first client render produce the same markup. Once the first render is
// mounted the host calls Commit: with intersection support and no native
// lazy loading the instance waits for the visibility observer, otherwise it
// starts loading right away.
//
// The client reports browser capabilities once per page through the
// Capabilities hook (Service.HandleCapabilities), intersections through the
// Intersect hook on the image container, and load results through the
// ImageLoad hook on the <img>. The rendered tree wires the last two to the
// instance.
//
// Images that are not critical also render a <noscript> copy of the image
// for clients without scripting.
package img
