package renderer

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// =============================================================
//
//	Shaders
//
// =============================================================
type Shader struct {
	Name           string
	vertexSource   string
	fragmentSource string
	program        uint32
	uniforms       *UniformCache
}

func (shader *Shader) Compile() error {
	vertex, err := GenShader(shader.vertexSource, gl.VERTEX_SHADER)
	if err != nil {
		return fmt.Errorf("%s vertex shader: %w", shader.Name, err)
	}
	fragment, err := GenShader(shader.fragmentSource, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vertex)
		return fmt.Errorf("%s fragment shader: %w", shader.Name, err)
	}
	program, err := GenShaderProgram(vertex, fragment)
	if err != nil {
		return fmt.Errorf("%s program: %w", shader.Name, err)
	}
	shader.program = program
	shader.uniforms = NewUniformCache(program)
	return nil
}

func (shader *Shader) Use() {
	gl.UseProgram(shader.program)
}

func (shader *Shader) Uniforms() *UniformCache {
	return shader.uniforms
}

func (shader *Shader) Delete() {
	if shader.program != 0 {
		gl.DeleteProgram(shader.program)
		shader.program = 0
	}
}

func GenShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	cSources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, cSources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)

		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))
		gl.DeleteShader(shader)

		return 0, fmt.Errorf("compile: %s", strings.TrimRight(log, "\x00"))
	}
	return shader, nil
}

func GenShaderProgram(vertexShader, fragmentShader uint32) (uint32, error) {
	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)

	gl.DetachShader(program, vertexShader)
	gl.DeleteShader(vertexShader)
	gl.DetachShader(program, fragmentShader)
	gl.DeleteShader(fragmentShader)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)

		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
		gl.DeleteProgram(program)

		return 0, fmt.Errorf("link: %s", strings.TrimRight(log, "\x00"))
	}
	return program, nil
}

// Texture units used by the PBR shader.
const (
	unitMap int32 = iota
	unitAOMap
	unitDisplacementMap
	unitMetalnessMap
	unitRoughnessMap
	unitNormalMap
)

func newStandardShader() Shader {
	return Shader{Name: "standard", vertexSource: standardVertexSource, fragmentSource: standardFragmentSource}
}

func newLineShader() Shader {
	return Shader{Name: "line", vertexSource: lineVertexSource, fragmentSource: lineFragmentSource}
}

var standardVertexSource = `#version 410 core

layout(location = 0) in vec3 inPosition;
layout(location = 1) in vec3 inNormal;
layout(location = 2) in vec2 inUV;
layout(location = 3) in vec2 inUV2;

uniform mat4 model;
uniform mat3 normalMatrix;
uniform mat4 viewProjection;

uniform sampler2D displacementMap;
uniform bool hasDisplacementMap;
uniform float displacementScale;
uniform float displacementBias;

out vec3 vWorldPos;
out vec3 vNormal;
out vec2 vUV;
out vec2 vUV2;

void main() {
    vec3 position = inPosition;
    if (hasDisplacementMap) {
        float h = textureLod(displacementMap, inUV, 0.0).r;
        position += normalize(inNormal) * (h * displacementScale + displacementBias);
    }

    vec4 world = model * vec4(position, 1.0);
    vWorldPos = world.xyz;
    vNormal = normalize(normalMatrix * inNormal);
    vUV = inUV;
    vUV2 = inUV2;

    gl_Position = viewProjection * world;
}
`

var standardFragmentSource = `#version 410 core

in vec3 vWorldPos;
in vec3 vNormal;
in vec2 vUV;
in vec2 vUV2;

out vec4 fragColor;

const float PI = 3.14159265359;
const int MAX_POINT_LIGHTS = 8;

struct PointLight {
    vec3 position;
    vec3 color;
    float intensity;
    float distance;
    float decay;
};

uniform PointLight pointLights[MAX_POINT_LIGHTS];
uniform int pointLightCount;
uniform vec3 ambientLight;
uniform vec3 cameraPosition;

uniform vec3 diffuseColor;
uniform float metalness;
uniform float roughness;
uniform float aoMapIntensity;
uniform float normalScale;

uniform sampler2D map;
uniform sampler2D aoMap;
uniform sampler2D metalnessMap;
uniform sampler2D roughnessMap;
uniform sampler2D normalMap;
uniform bool hasMap;
uniform bool hasAoMap;
uniform bool hasMetalnessMap;
uniform bool hasRoughnessMap;
uniform bool hasNormalMap;

// Tangent frame from screen space derivatives, no tangent attribute needed.
vec3 perturbNormal(vec3 N, vec3 p, vec2 uv, vec3 mapN) {
    vec3 dp1 = dFdx(p);
    vec3 dp2 = dFdy(p);
    vec2 duv1 = dFdx(uv);
    vec2 duv2 = dFdy(uv);

    vec3 dp2perp = cross(dp2, N);
    vec3 dp1perp = cross(N, dp1);
    vec3 T = dp2perp * duv1.x + dp1perp * duv2.x;
    vec3 B = dp2perp * duv1.y + dp1perp * duv2.y;

    float det = max(dot(T, T), dot(B, B));
    if (det == 0.0) {
        return N;
    }
    float invmax = inversesqrt(det);
    return normalize(mat3(T * invmax, B * invmax, N) * mapN);
}

float distributionGGX(float NdotH, float alpha) {
    float a2 = alpha * alpha;
    float d = NdotH * NdotH * (a2 - 1.0) + 1.0;
    return a2 / (PI * d * d);
}

float visibilitySmith(float NdotV, float NdotL, float alpha) {
    float a2 = alpha * alpha;
    float smithV = NdotL * sqrt(a2 + (1.0 - a2) * NdotV * NdotV);
    float smithL = NdotV * sqrt(a2 + (1.0 - a2) * NdotL * NdotL);
    return 0.5 / max(smithV + smithL, 1e-5);
}

vec3 fresnelSchlick(vec3 f0, float VdotH) {
    return f0 + (1.0 - f0) * pow(1.0 - VdotH, 5.0);
}

void main() {
    vec4 baseColor = vec4(diffuseColor, 1.0);
    if (hasMap) {
        baseColor *= texture(map, vUV);
    }

    float rough = roughness;
    if (hasRoughnessMap) {
        rough *= texture(roughnessMap, vUV).g;
    }
    rough = clamp(rough, 0.0525, 1.0);

    float metal = metalness;
    if (hasMetalnessMap) {
        metal *= texture(metalnessMap, vUV).b;
    }

    vec3 N = normalize(vNormal);
    if (!gl_FrontFacing) {
        N = -N;
    }
    if (hasNormalMap) {
        vec3 mapN = texture(normalMap, vUV).xyz * 2.0 - 1.0;
        mapN.xy *= normalScale;
        N = perturbNormal(N, vWorldPos, vUV, mapN);
    }

    vec3 V = normalize(cameraPosition - vWorldPos);
    float NdotV = max(dot(N, V), 1e-4);

    vec3 albedo = baseColor.rgb * (1.0 - metal);
    vec3 f0 = mix(vec3(0.04), baseColor.rgb, metal);
    float alpha = rough * rough;

    vec3 direct = vec3(0.0);
    for (int i = 0; i < pointLightCount; i++) {
        vec3 toLight = pointLights[i].position - vWorldPos;
        float dist = length(toLight);
        vec3 L = toLight / max(dist, 1e-5);

        float attenuation = 1.0;
        if (pointLights[i].distance > 0.0) {
            attenuation = pow(clamp(1.0 - dist / pointLights[i].distance, 0.0, 1.0), pointLights[i].decay);
        }

        float NdotL = max(dot(N, L), 0.0);
        if (NdotL <= 0.0) {
            continue;
        }
        vec3 H = normalize(V + L);
        float NdotH = max(dot(N, H), 0.0);
        float VdotH = max(dot(V, H), 0.0);

        vec3 F = fresnelSchlick(f0, VdotH);
        vec3 specular = F * distributionGGX(NdotH, alpha) * visibilitySmith(NdotV, NdotL, alpha);
        vec3 diffuse = (1.0 - F) * albedo / PI;

        vec3 irradiance = pointLights[i].color * pointLights[i].intensity * attenuation * NdotL * PI;
        direct += (diffuse + specular) * irradiance;
    }

    vec3 indirect = ambientLight * albedo;
    if (hasAoMap) {
        indirect *= (texture(aoMap, vUV2).r - 1.0) * aoMapIntensity + 1.0;
    }

    fragColor = vec4(direct + indirect, baseColor.a);
}
`

var lineVertexSource = `#version 410 core

layout(location = 0) in vec3 inPosition;
layout(location = 1) in vec3 inColor;

uniform mat4 mvp;

out vec3 vColor;

void main() {
    vColor = inColor;
    gl_Position = mvp * vec4(inPosition, 1.0);
}
`

var lineFragmentSource = `#version 410 core

in vec3 vColor;
out vec4 fragColor;

void main() {
    fragColor = vec4(vColor, 1.0);
}
`
