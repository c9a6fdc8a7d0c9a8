// Package scenario loads declarative grove scenes from YAML files.
//
// A scenario file lists a node forest and the animations to start on it:
//
//	nodes:
//	  - name: logo
//	    image: logo.png
//	    position: {x: 400, y: 300}
//	    anchor: {x: 64, y: 64}
//	animations:
//	  - name: pulse
//	    node: logo
//	    action:
//	      type: while
//	      condition: "iteration < 3"
//	      actions:
//	        - {type: fade-out, duration: 1, ease: quad-in}
//	        - {type: fade-in, duration: 1, ease: quad-out}
//
// While conditions are [Tengo] expressions evaluated against the animated
// node. [Watcher] reports edits to scenario files so a program can reload
// them with [Instance.Remove] and [Apply].
//
// [Tengo]: https://github.com/d5/tengo
package scenario
