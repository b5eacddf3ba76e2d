package kinetree_test

import (
	"context"
	"fmt"
	"log"

	"github.com/aretw0/kinetree"
	"github.com/aretw0/kinetree/pkg/urdf"
)

// ExampleEngine_Render renders a one-link robot from an inline description.
func ExampleEngine_Render() {
	engine := kinetree.New()

	out, err := engine.Render(context.Background(), []byte(`
robot: box
links:
  - name: base
    visuals:
      - geometry: {box: [1, 2, 3]}
`), urdf.NewConfig())
	if err != nil {
		log.Fatal(err)
	}
	fmt.Print(string(out))
	// Output:
	// <?xml version="1.0"?>
	// <robot name="box">
	//   <link name="base">
	//     <visual>
	//       <geometry>
	//         <box size="1 2 3"/>
	//       </geometry>
	//     </visual>
	//   </link>
	// </robot>
}
